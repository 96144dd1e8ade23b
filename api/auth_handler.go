package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stock_ledger/internal/auth"
)

// authHandler exposes the access gate.
type authHandler struct {
	gate   *auth.Gate
	logger *zap.Logger
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister handles the POST /users/register endpoint.
func (h *authHandler) handleRegister(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.gate.Register(req.Username, req.Password); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

// handleLogin handles the POST /users/login endpoint.
func (h *authHandler) handleLogin(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	ok, err := h.gate.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"username": req.Username, "authenticated": true})
}
