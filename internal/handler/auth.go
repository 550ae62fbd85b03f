package handler

import (
	"errors"
	"net/http"

	"tallerpro/internal/apierror"
	"tallerpro/internal/dto"
	"tallerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc   service.AuthService
	reset service.ResetService
}

func NewAuthHandler(svc service.AuthService, reset service.ResetService) *AuthHandler {
	return &AuthHandler{svc: svc, reset: reset}
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Recuperación de contraseña por email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Email de la cuenta"
// @Success 200 {object} dto.MensajeResponse
// @Failure 429 {object} apierror.APIError
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	mensaje, err := h.reset.Solicitar(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLimiteReset):
			c.JSON(http.StatusTooManyRequests, apierror.New(err.Error()))
		case errors.Is(err, service.ErrEmailNoConfigurado):
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Failed to process password reset request"))
		}
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: mensaje})
}
