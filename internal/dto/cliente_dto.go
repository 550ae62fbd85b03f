package dto

import "time"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// GuardarClienteRequest upserts a client by cédula: if the cédula exists the
// mutable fields are overwritten, otherwise a new client is created.
type GuardarClienteRequest struct {
	Cedula    string  `json:"cedula" validate:"required"`
	Nombre    string  `json:"nombre" validate:"required"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// TicketCount mirrors the `_count` relation envelope of the legacy API.
type TicketCount struct {
	Tickets int64 `json:"tickets"`
}

type ClienteResponse struct {
	ID        uint      `json:"id"`
	Cedula    string    `json:"cedula"`
	Nombre    string    `json:"nombre"`
	Telefono  *string   `json:"telefono"`
	Email     *string   `json:"email"`
	Direccion *string   `json:"direccion"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Tickets []TicketResponse `json:"tickets,omitempty"`
	Count   *TicketCount     `json:"_count,omitempty"`
}

type ClientesResponse struct {
	Clients []ClienteResponse `json:"clients"`
}

type ClienteDetalleResponse struct {
	Client ClienteResponse `json:"client"`
}
