package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TipoDispositivo is a soft-deletable catalog of device kinds, with
// optional reference prices. The unique constraint on Nombre spans active
// and inactive rows alike.
type TipoDispositivo struct {
	ID                     uint             `gorm:"primaryKey"`
	Nombre                 string           `gorm:"uniqueIndex;not null"`
	PrecioRevision         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PrecioReparacionMinima *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Activo                 bool             `gorm:"not null;default:true"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (TipoDispositivo) TableName() string { return "tipos_dispositivo" }

// Marca is the soft-deletable brand catalog.
type Marca struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Marca) TableName() string { return "marcas" }
