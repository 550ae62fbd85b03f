package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearTicketRequest struct {
	ClienteID       uint   `json:"clientId"        validate:"required"`
	TipoDispositivo string `json:"tipoDispositivo"`
	MarcaModelo     string `json:"marcaModelo"`
	NumeroSerie     string `json:"numeroSerie"`
	Descripcion     string `json:"descripcion"     validate:"required"`
	// Password is the device unlock code handed over by the customer
	Password string `json:"password"`
}

// ActualizarTicketRequest is a partial update: only non-nil fields change.
type ActualizarTicketRequest struct {
	Diagnostico *string          `json:"diagnostico"`
	Costo       *decimal.Decimal `json:"costo"`
	Status      *string          `json:"status"`
}

// TicketFilter narrows the listing; Status "ALL" or empty means no status
// filter, Busqueda matches code, client name, cédula, device type and brand.
type TicketFilter struct {
	Busqueda string
	Status   string
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type TicketResponse struct {
	ID              uint   `json:"id"`
	Codigo          string `json:"codigo"`
	ClienteID       uint   `json:"clientId"`
	TipoDispositivo string `json:"tipoDispositivo"`
	MarcaModelo     string `json:"marcaModelo"`
	NumeroSerie     string `json:"numeroSerie"`
	Descripcion     string `json:"descripcion"`
	// Password (clave de desbloqueo) solo se incluye en la vista de detalle
	Password    string           `json:"password,omitempty"`
	Diagnostico *string          `json:"diagnostico"`
	Costo       *decimal.Decimal `json:"costo"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	Cliente *ClienteResponse `json:"client,omitempty"`
}

type TicketDetalleResponse struct {
	Ticket TicketResponse `json:"ticket"`
}

// TicketsResponse carries the filtered page plus the status breakdown over
// the whole table (the dashboard counters ignore active filters).
type TicketsResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Stats   map[string]int64 `json:"stats"`
}
