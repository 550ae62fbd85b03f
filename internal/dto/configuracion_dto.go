package dto

import "time"

// ── Negocio ───────────────────────────────────────────────────────────────────

// GuardarNegocioRequest overwrites the single business-config row. Callers
// resend the full object; omitted optional fields become null.
type GuardarNegocioRequest struct {
	Nombre        string  `json:"nombre" validate:"required,min=1,max=150"`
	Lema          *string `json:"lema"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Direccion     *string `json:"direccion"`
	SitioWeb      *string `json:"sitioWeb"`
	MensajeTicket *string `json:"mensajeTicket"`
	LogoURL       *string `json:"logoUrl"`
}

type NegocioResponse struct {
	ID            uint      `json:"id"`
	Nombre        string    `json:"nombre"`
	Lema          *string   `json:"lema"`
	Telefono      *string   `json:"telefono"`
	Email         *string   `json:"email"`
	Direccion     *string   `json:"direccion"`
	SitioWeb      *string   `json:"sitioWeb"`
	MensajeTicket *string   `json:"mensajeTicket"`
	LogoURL       *string   `json:"logoUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ── Email ─────────────────────────────────────────────────────────────────────

type GuardarEmailRequest struct {
	SMTPHost     string `json:"smtpHost"     validate:"required"`
	SMTPPort     int    `json:"smtpPort"     validate:"required,min=1,max=65535"`
	SMTPUser     string `json:"smtpUser"     validate:"required"`
	SMTPPassword string `json:"smtpPassword" validate:"required"`
	FromEmail    string `json:"fromEmail"    validate:"required,email"`
	FromName     string `json:"fromName"     validate:"required"`
}

type EnviarPruebaRequest struct {
	TestEmail string `json:"testEmail" validate:"required,email"`
}

// EmailConfigResponse never includes the SMTP password, encrypted or not.
type EmailConfigResponse struct {
	ID        uint      `json:"id"`
	SMTPHost  string    `json:"smtpHost"`
	SMTPPort  int       `json:"smtpPort"`
	SMTPUser  string    `json:"smtpUser"`
	FromEmail string    `json:"fromEmail"`
	FromName  string    `json:"fromName"`
	Activo    bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type EmailConfigEnvelope struct {
	Exists bool                 `json:"exists"`
	Config *EmailConfigResponse `json:"config,omitempty"`
}

type EmailGuardadoResponse struct {
	Message string              `json:"message"`
	Config  EmailConfigResponse `json:"config"`
}
