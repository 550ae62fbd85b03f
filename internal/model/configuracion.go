package model

import (
	"time"
)

// ConfigNegocio holds company data shown on receipts and the dashboard.
// The table holds at most one row, created lazily on first read.
type ConfigNegocio struct {
	ID            uint   `gorm:"primaryKey"`
	Nombre        string `gorm:"not null;default:'TallerPro'"`
	Lema          *string
	Telefono      *string
	Email         *string
	Direccion     *string
	SitioWeb      *string
	MensajeTicket *string
	LogoURL       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ConfigNegocio) TableName() string { return "config_negocio" }

// ConfigEmail is the outbound SMTP configuration. Rows are append-only
// history; a partial unique index (see infra.applySchemaPatches) enforces
// that at most one row has Activo = true.
type ConfigEmail struct {
	ID       uint   `gorm:"primaryKey"`
	SMTPHost string `gorm:"not null"`
	SMTPPort int    `gorm:"not null"`
	SMTPUser string `gorm:"not null"`
	// SMTPPassword se guarda cifrada (AES-256-CBC, formato ivHex:cipherHex)
	SMTPPassword string `gorm:"not null"`
	FromEmail    string `gorm:"not null"`
	FromName     string `gorm:"not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ConfigEmail) TableName() string { return "config_email" }
