package repository

import (
	"context"

	"tallerpro/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClienteConConteo pairs a client with its total ticket count for listados.
type ClienteConConteo struct {
	Cliente      model.Cliente
	TotalTickets int64
}

type ClienteRepository interface {
	// Upsert creates or overwrites by cédula and leaves the row's ID in c.
	Upsert(ctx context.Context, c *model.Cliente) error
	// ObtenerPorCedula loads the client with its most recent tickets,
	// capped at limite (0 = no tickets).
	ObtenerPorCedula(ctx context.Context, cedula string, limite int) (*model.Cliente, error)
	// ObtenerPorID loads the client with the full ticket history, newest first.
	ObtenerPorID(ctx context.Context, id uint) (*model.Cliente, error)
	ListarConConteo(ctx context.Context) ([]ClienteConConteo, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Upsert(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cedula"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombre", "telefono", "email", "direccion", "updated_at"}),
	}).Create(c).Error
}

func (r *clienteRepo) ObtenerPorCedula(ctx context.Context, cedula string, limite int) (*model.Cliente, error) {
	var c model.Cliente
	q := r.db.WithContext(ctx)
	if limite > 0 {
		q = q.Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc").Limit(limite)
		})
	}
	if err := q.Where("cedula = ?", cedula).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) ListarConConteo(ctx context.Context) ([]ClienteConConteo, error) {
	type fila struct {
		model.Cliente
		TotalTickets int64
	}
	var filas []fila
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).
		Select("clientes.*, (SELECT COUNT(*) FROM tickets WHERE tickets.cliente_id = clientes.id) AS total_tickets").
		Order("clientes.created_at desc").
		Find(&filas).Error
	if err != nil {
		return nil, err
	}

	result := make([]ClienteConConteo, len(filas))
	for i, f := range filas {
		result[i] = ClienteConConteo{Cliente: f.Cliente, TotalTickets: f.TotalTickets}
	}
	return result, nil
}
