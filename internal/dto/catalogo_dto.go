package dto

import (
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CrearTipoRequest struct {
	Nombre                 string           `json:"nombre" validate:"required,min=1,max=100"`
	PrecioRevision         *decimal.Decimal `json:"precioRevision"`
	PrecioReparacionMinima *decimal.Decimal `json:"precioReparacionMinima"`
}

type ActualizarTipoRequest struct {
	Nombre                 *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	Activo                 *bool            `json:"activo"`
	PrecioRevision         *decimal.Decimal `json:"precioRevision"`
	PrecioReparacionMinima *decimal.Decimal `json:"precioReparacionMinima"`
}

type CrearMarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

type ActualizarMarcaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Activo *bool   `json:"activo"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type TipoResponse struct {
	ID                     uint             `json:"id"`
	Nombre                 string           `json:"nombre"`
	PrecioRevision         *decimal.Decimal `json:"precioRevision"`
	PrecioReparacionMinima *decimal.Decimal `json:"precioReparacionMinima"`
	Activo                 bool             `json:"activo"`
}

type MarcaResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type TiposResponse struct {
	Tipos []TipoResponse `json:"tipos"`
}

type TipoDetalleResponse struct {
	Tipo TipoResponse `json:"tipo"`
}

type MarcasResponse struct {
	Marcas []MarcaResponse `json:"marcas"`
}

type MarcaDetalleResponse struct {
	Marca MarcaResponse `json:"marca"`
}
