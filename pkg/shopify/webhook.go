// Package shopify verifies the authenticity of inbound Shopify webhooks.
package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// HMACHeader is the header Shopify signs webhook deliveries with.
const HMACHeader = "X-Shopify-Hmac-Sha256"

// ErrMissingSecret is returned when verification is attempted without a
// configured webhook secret. Callers must surface this as a server
// configuration error, not a signature mismatch.
var ErrMissingSecret = errors.New("shopify: webhook secret is not configured")

// VerifyWebhook reports whether signatureHeader matches the HMAC-SHA256
// digest of body under secret. The header carries the digest base64
// encoded. A malformed or mismatched signature is an ordinary
// verification failure; the byte comparison is constant time and only
// runs once the lengths are known to match.
func VerifyWebhook(body []byte, signatureHeader, secret string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	provided, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signatureHeader))
	if err != nil {
		return false, nil
	}
	if len(provided) != len(expected) {
		return false, nil
	}
	return hmac.Equal(provided, expected), nil
}
