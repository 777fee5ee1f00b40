package delivery

import (
	"errors"
	"net/http"

	customerdto "sunrisetrade-backend/internal/customer/dto"
	"sunrisetrade-backend/internal/customer/repository"
	"sunrisetrade-backend/internal/customer/usecase"

	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenUsecase usecase.TokenUsecase
}

func NewTokenHandler(tokenUsecase usecase.TokenUsecase) *TokenHandler {
	return &TokenHandler{
		tokenUsecase: tokenUsecase,
	}
}

// RegisterToken handles POST /api/register-fcm-token
func (h *TokenHandler) RegisterToken(c *gin.Context) {
	var req customerdto.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": usecase.ErrMissingFields.Error()})
		return
	}

	outcome, err := h.tokenUsecase.RegisterToken(req.ShopifyCustomerID, req.Token)
	if errors.Is(err, usecase.ErrMissingFields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	resp := customerdto.RegisterTokenResponse{Success: true}
	switch outcome {
	case repository.OutcomeCreated:
		resp.Created = true
	case repository.OutcomeAdded:
		resp.Added = true
	case repository.OutcomeDuplicate:
		resp.Duplicate = true
	}
	c.JSON(http.StatusOK, resp)
}
