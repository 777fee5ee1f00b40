package delivery

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	notificationdto "sunrisetrade-backend/internal/notification/dto"
	"sunrisetrade-backend/internal/notification/usecase"
	"sunrisetrade-backend/pkg/shopify"

	"github.com/gin-gonic/gin"
)

type fakeNotificationUsecase struct {
	orderResult usecase.OrderResult
	orderErr    error
	orderBodies [][]byte
	sendErr     error
}

func (f *fakeNotificationUsecase) SendToToken(ctx context.Context, req notificationdto.SendNotificationRequest) (string, error) {
	if req.Token == "" {
		return "", usecase.ErrMissingToken
	}
	if req.Notification == nil || req.Notification.Title == "" || req.Notification.Body == "" {
		return "", usecase.ErrMissingNotification
	}
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "projects/test/messages/1", nil
}

func (f *fakeNotificationUsecase) SendMulticast(ctx context.Context, req notificationdto.MulticastNotificationRequest) (*notificationdto.MulticastNotificationResponse, error) {
	if len(req.Tokens) == 0 {
		return nil, usecase.ErrMissingTokens
	}
	if req.Notification == nil || req.Notification.Title == "" || req.Notification.Body == "" {
		return nil, usecase.ErrMissingNotification
	}
	return &notificationdto.MulticastNotificationResponse{
		Success:      true,
		SuccessCount: len(req.Tokens),
		Responses:    make([]notificationdto.SendResult, len(req.Tokens)),
		Message:      "Multicast notification sent",
	}, nil
}

func (f *fakeNotificationUsecase) HandleOrderCreated(ctx context.Context, rawBody []byte) (usecase.OrderResult, error) {
	f.orderBodies = append(f.orderBodies, rawBody)
	return f.orderResult, f.orderErr
}

func newTestRouter(fake *fakeNotificationUsecase, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewNotificationHandler(fake, secret)
	r.POST("/api/webhook/order-created", h.OrderCreatedWebhook)
	r.POST("/api/send-notification", h.SendNotification)
	r.POST("/api/send-multicast-notification", h.SendMulticastNotification)
	return r
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestOrderCreatedWebhook_MissingSecret(t *testing.T) {
	fake := &fakeNotificationUsecase{orderResult: usecase.OrderNotified}
	r := newTestRouter(fake, "")

	body := []byte(`{"id":1001}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/order-created", bytes.NewReader(body))
	req.Header.Set(shopify.HMACHeader, signBody("whatever", body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for missing secret, got %d", rr.Code)
	}
	if rr.Body.String() != "Missing secret" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
	if len(fake.orderBodies) != 0 {
		t.Fatalf("business logic must not run without a configured secret")
	}
}

func TestOrderCreatedWebhook_InvalidSignature(t *testing.T) {
	fake := &fakeNotificationUsecase{orderResult: usecase.OrderNotified}
	r := newTestRouter(fake, "shopify_secret")

	body := []byte(`{"id":1001}`)
	for _, header := range []string{"", "garbage", signBody("wrong_secret", body)} {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/order-created", bytes.NewReader(body))
		if header != "" {
			req.Header.Set(shopify.HMACHeader, header)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rr.Code)
		}
	}
	if len(fake.orderBodies) != 0 {
		t.Fatalf("business logic must not run on a rejected signature")
	}
}

func TestOrderCreatedWebhook_ValidSignature(t *testing.T) {
	cases := []struct {
		result usecase.OrderResult
	}{
		{usecase.OrderNotified},
		{usecase.OrderNoCustomer},
		{usecase.OrderNoUser},
		{usecase.OrderNoTokens},
	}
	for _, tc := range cases {
		fake := &fakeNotificationUsecase{orderResult: tc.result}
		r := newTestRouter(fake, "shopify_secret")

		body := []byte(`{"id":1001,"customer":{"id":42}}`)
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/order-created", bytes.NewReader(body))
		req.Header.Set(shopify.HMACHeader, signBody("shopify_secret", body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("result %q: expected 200, got %d", tc.result, rr.Code)
		}
		if rr.Body.String() != string(tc.result) {
			t.Fatalf("expected body %q, got %q", tc.result, rr.Body.String())
		}
		if len(fake.orderBodies) != 1 || !bytes.Equal(fake.orderBodies[0], body) {
			t.Fatalf("dispatcher must receive the exact raw body")
		}
	}
}

func TestOrderCreatedWebhook_InternalError(t *testing.T) {
	fake := &fakeNotificationUsecase{orderErr: errors.New("boom")}
	r := newTestRouter(fake, "shopify_secret")

	body := []byte(`{"id":1001}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/order-created", bytes.NewReader(body))
	req.Header.Set(shopify.HMACHeader, signBody("shopify_secret", body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if rr.Body.String() != "Internal server error" {
		t.Fatalf("internal details must not leak, got %q", rr.Body.String())
	}
}

func TestSendNotification_Validation(t *testing.T) {
	r := newTestRouter(&fakeNotificationUsecase{}, "shopify_secret")

	for _, body := range []string{
		`{}`,
		`{"token":"tokA"}`,
		`{"token":"tokA","notification":{"title":"t"}}`,
		`{"notification":{"title":"t","body":"b"}}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/send-notification", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rr.Code)
		}
	}
}

func TestSendNotification_Success(t *testing.T) {
	r := newTestRouter(&fakeNotificationUsecase{}, "shopify_secret")

	body := `{"token":"tokA","notification":{"title":"t","body":"b"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/send-notification", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp notificationdto.SendNotificationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.MessageID == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSendNotification_ProviderError(t *testing.T) {
	r := newTestRouter(&fakeNotificationUsecase{sendErr: errors.New("quota exceeded")}, "shopify_secret")

	body := `{"token":"tokA","notification":{"title":"t","body":"b"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/send-notification", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var resp notificationdto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" || resp.Code == "" {
		t.Fatalf("unexpected error response %+v", resp)
	}
}

func TestSendMulticastNotification(t *testing.T) {
	r := newTestRouter(&fakeNotificationUsecase{}, "shopify_secret")

	req := httptest.NewRequest(http.MethodPost, "/api/send-multicast-notification",
		bytes.NewBufferString(`{"tokens":["tokA","tokB"],"notification":{"title":"t","body":"b"}}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp notificationdto.MulticastNotificationResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SuccessCount != 2 || len(resp.Responses) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/send-multicast-notification",
		bytes.NewBufferString(`{"tokens":[],"notification":{"title":"t","body":"b"}}`))
	req.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty token list, got %d", rr.Code)
	}
}
