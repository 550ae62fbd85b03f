package model

import (
	"time"
)

// Cliente is a repair-shop customer, keyed by national ID (cédula).
// Upserts always go through the cédula; clients are never deleted.
type Cliente struct {
	ID        uint   `gorm:"primaryKey"`
	Cedula    string `gorm:"uniqueIndex;not null"`
	Nombre    string `gorm:"not null"`
	Telefono  *string
	Email     *string
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Tickets []Ticket `gorm:"foreignKey:ClienteID"`
}

func (Cliente) TableName() string { return "clientes" }
