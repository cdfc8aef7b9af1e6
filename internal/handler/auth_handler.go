package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retroboard/internal/auth"
)

type AuthHandler struct {
	editPasswordHash string
	jwtSecret        string
	logger           *zap.Logger
}

func NewAuthHandler(editPasswordHash, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{editPasswordHash: editPasswordHash, jwtSecret: jwtSecret, logger: logger}
}

type editModeRequest struct {
	Password string `json:"password"`
}

// EnterEditMode exchanges the shared edit password for a capability token.
// Viewing needs no auth at all; only writes carry the token.
func (h *AuthHandler) EnterEditMode(c *gin.Context) {
	var req editModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !auth.VerifyEditPassword(req.Password, h.editPasswordHash) {
		h.logger.Warn("edit mode denied", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := auth.GenerateEditToken(h.jwtSecret)
	if err != nil {
		h.logger.Error("failed to generate edit token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
