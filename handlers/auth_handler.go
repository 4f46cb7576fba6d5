package handlers

import (
	"net/http"

	"github.com/hassanjrao/translation-management/helper"
	"github.com/hassanjrao/translation-management/models"
	"github.com/hassanjrao/translation-management/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

// IssueToken exchanges email/password credentials for a fresh bearer
// token. The plaintext token appears in this response only.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Malformed request body", nil)
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, "Invalid request", nil)
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Invalid credentials",
			"errors":  map[string][]string{},
		})
		return
	}

	token, err := h.authService.IssueToken(user, req.Name)
	if err != nil {
		h.Helper.SendServiceError(c, "Unable to issue token", err)
		return
	}

	h.Helper.SendCreated(c, "Token issued", gin.H{"token": token})
}

// RevokeToken revokes the bearer token the request authenticated with.
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	tokenString, exists := c.Get("bearer_token")
	if !exists {
		h.Helper.SendUnauthorizedError(c)
		return
	}

	if err := h.authService.RevokeToken(tokenString.(string)); err != nil {
		h.Helper.SendServiceError(c, "Unable to revoke token", err)
		return
	}

	h.Helper.SendSuccess(c, "Token revoked", true)
}
