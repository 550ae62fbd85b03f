package handler

import (
	"errors"
	"net/http"

	"tallerpro/internal/apierror"
	"tallerpro/internal/dto"
	"tallerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// ObtenerNegocio GET /business-config — crea la fila por defecto si no existe.
func (h *ConfiguracionHandler) ObtenerNegocio(c *gin.Context) {
	resp, err := h.svc.ObtenerNegocio(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener configuración"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarNegocio POST /business-config (ADMIN) — sobreescritura completa.
func (h *ConfiguracionHandler) GuardarNegocio(c *gin.Context) {
	var req dto.GuardarNegocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarNegocio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al guardar configuración"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerEmail GET /email-config (ADMIN) — nunca devuelve la contraseña.
func (h *ConfiguracionHandler) ObtenerEmail(c *gin.Context) {
	resp, err := h.svc.ObtenerEmail(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener configuración de email"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GuardarEmail POST /email-config (ADMIN) — verifica el handshake SMTP
// antes de cifrar y guardar.
func (h *ConfiguracionHandler) GuardarEmail(c *gin.Context) {
	var req dto.GuardarEmailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarEmail(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSMTPInvalido) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al guardar configuración de email"))
		return
	}
	c.JSON(http.StatusOK, dto.EmailGuardadoResponse{
		Message: "Email configuration saved successfully",
		Config:  *resp,
	})
}

// EnviarPrueba PUT /email-config (ADMIN) — correo de prueba con la
// configuración activa.
func (h *ConfiguracionHandler) EnviarPrueba(c *gin.Context) {
	var req dto.EnviarPruebaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EnviarPrueba(c.Request.Context(), req.TestEmail); err != nil {
		switch {
		case errors.Is(err, service.ErrConfigEmailAusente):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrSMTPInvalido):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error al enviar correo de prueba"))
		}
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Test email sent successfully"})
}
