package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Rol por defecto: USER
	Rol string `json:"rol" validate:"omitempty,oneof=ADMIN USER"`
}

type ActualizarUsuarioRequest struct {
	Nombre string `json:"nombre" validate:"omitempty,min=2,max=100"`
	Email  string `json:"email"  validate:"omitempty,email"`
	// Password vacio significa "conservar la actual"
	Password string `json:"password" validate:"omitempty,min=6"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=ADMIN USER"`
	Activo   *bool  `json:"activo"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse never carries password material.
type UsuarioResponse struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}

type MensajeResponse struct {
	Message string `json:"message"`
}
