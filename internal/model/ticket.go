package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un ticket. El status es un conjunto cerrado: valores
// fuera de esta lista se rechazan en la capa de servicio.
const (
	StatusRecibido     = "RECIBIDO"
	StatusEnReparacion = "EN_REPARACION"
	StatusReparado     = "REPARADO"
	StatusEntregado    = "ENTREGADO"
)

// StatusValido reports whether s belongs to the closed status set.
func StatusValido(s string) bool {
	switch s {
	case StatusRecibido, StatusEnReparacion, StatusReparado, StatusEntregado:
		return true
	}
	return false
}

// Ticket is a device repair order. Codigo is assigned from the row's own
// primary key inside the insert transaction (TKT-%05d), so it is unique
// even under concurrent intakes. TipoDispositivo and MarcaModelo are string
// snapshots, not foreign keys: catalog edits never touch historical tickets.
type Ticket struct {
	ID        uint   `gorm:"primaryKey"`
	Codigo    string `gorm:"uniqueIndex"`
	ClienteID uint   `gorm:"index;not null"`
	// TipoDispositivo y MarcaModelo se copian del catálogo al momento del ingreso
	TipoDispositivo string `gorm:"not null"`
	MarcaModelo     string
	NumeroSerie     string
	Descripcion     string `gorm:"not null"`
	// PasswordCifrado guarda la clave de desbloqueo del equipo cifrada en
	// reposo (AES-256-CBC, mismo esquema que la clave SMTP)
	PasswordCifrado string
	Diagnostico     *string
	Costo           *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status          string           `gorm:"type:varchar(20);not null;default:'RECIBIDO';index"`
	CreatedAt       time.Time        `gorm:"index"`
	UpdatedAt       time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}
