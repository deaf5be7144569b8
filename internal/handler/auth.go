package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/constants"
	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(resp, "Login successful"))
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(resp, "Registration successful"))
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.auth.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(resp, "Token refreshed"))
}

// Logout handles POST /api/auth/logout. It revokes the presented refresh
// token and succeeds regardless of whether the token was live.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(nil, "Logged out"))
}

// RevokeAll handles POST /api/auth/revoke-all. It kills every refresh token
// of the calling user.
func (h *AuthHandler) RevokeAll(c *gin.Context) {
	userID, ok := c.Get(constants.CtxUserID)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	id, ok := userID.(uint)
	if !ok {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}

	count, err := h.auth.RevokeAllForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(gin.H{"revoked": count}, "All sessions revoked"))
}
