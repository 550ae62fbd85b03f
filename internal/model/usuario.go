package model

import (
	"time"
)

// Roles asignables a un usuario.
const (
	RolAdmin = "ADMIN"
	RolUser  = "USER"
)

// Usuario stores system users with role-based access.
// Rol: "ADMIN" | "USER"
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(10);not null;default:'USER'"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
