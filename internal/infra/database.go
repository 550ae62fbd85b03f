package infra

import (
	"fmt"

	"tallerpro/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies idempotent SQL patches for
// what GORM cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the schema and applies the SQL patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.PasswordResetToken{},
		&model.Cliente{},
		&model.Ticket{},
		&model.TipoDispositivo{},
		&model.Marca{},
		&model.ConfigNegocio{},
		&model.ConfigEmail{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
// Each statement uses IF NOT EXISTS semantics so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one active SMTP config: application code deactivates old
		// rows inside a transaction, the index makes the invariant hold even
		// under concurrent writers.
		`CREATE UNIQUE INDEX IF NOT EXISTS uni_config_email_activa
		     ON config_email (activo)
		     WHERE activo = true`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
