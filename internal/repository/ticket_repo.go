package repository

import (
	"context"
	"fmt"
	"time"

	"tallerpro/internal/dto"
	"tallerpro/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TipoConteo is a device-type bucket for the "most common services" stat.
type TipoConteo struct {
	Tipo     string
	Cantidad int64
}

type TicketRepository interface {
	// Crear inserts the ticket and derives Codigo from the generated primary
	// key in the same transaction, so concurrent intakes can never collide.
	Crear(ctx context.Context, t *model.Ticket) error
	ObtenerPorID(ctx context.Context, id uint) (*model.Ticket, error)
	// Actualizar applies the column map and returns the fresh row with client.
	Actualizar(ctx context.Context, id uint, campos map[string]interface{}) (*model.Ticket, error)
	Listar(ctx context.Context, filtro dto.TicketFilter, limite int) ([]model.Ticket, error)
	ConteoPorStatus(ctx context.Context) (map[string]int64, error)

	// Agregados para /stats
	Contar(ctx context.Context) (int64, error)
	ContarConStatus(ctx context.Context, statuses []string) (int64, error)
	SumarCostos(ctx context.Context, desde *time.Time) (decimal.Decimal, error)
	ListarTerminados(ctx context.Context) ([]model.Ticket, error)
	ContarEntre(ctx context.Context, desde, hasta time.Time) (int64, error)
	ConteoPorTipo(ctx context.Context, limite int) ([]TipoConteo, error)
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) Crear(ctx context.Context, t *model.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		t.Codigo = fmt.Sprintf("TKT-%05d", t.ID)
		return tx.Model(t).Update("codigo", t.Codigo).Error
	})
}

func (r *ticketRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Ticket, error) {
	var t model.Ticket
	if err := r.db.WithContext(ctx).Preload("Cliente").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) Actualizar(ctx context.Context, id uint, campos map[string]interface{}) (*model.Ticket, error) {
	res := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.ObtenerPorID(ctx, id)
}

func (r *ticketRepo) Listar(ctx context.Context, filtro dto.TicketFilter, limite int) ([]model.Ticket, error) {
	q := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Joins("JOIN clientes ON clientes.id = tickets.cliente_id").
		Preload("Cliente").
		Order("tickets.created_at desc").
		Limit(limite)

	if filtro.Busqueda != "" {
		patron := "%" + filtro.Busqueda + "%"
		q = q.Where(
			`tickets.codigo ILIKE ? OR clientes.nombre ILIKE ? OR clientes.cedula ILIKE ?
			 OR tickets.tipo_dispositivo ILIKE ? OR tickets.marca_modelo ILIKE ?`,
			patron, patron, patron, patron, patron,
		)
	}
	if filtro.Status != "" && filtro.Status != "ALL" {
		q = q.Where("tickets.status = ?", filtro.Status)
	}

	var tickets []model.Ticket
	err := q.Find(&tickets).Error
	return tickets, err
}

// ConteoPorStatus covers the whole table, ignoring any listing filters.
func (r *ticketRepo) ConteoPorStatus(ctx context.Context) (map[string]int64, error) {
	type fila struct {
		Status   string
		Cantidad int64
	}
	var filas []fila
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Select("status, COUNT(*) AS cantidad").
		Group("status").
		Find(&filas).Error
	if err != nil {
		return nil, err
	}

	conteo := make(map[string]int64, len(filas))
	for _, f := range filas {
		conteo[f.Status] = f.Cantidad
	}
	return conteo, nil
}

func (r *ticketRepo) Contar(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).Count(&n).Error
	return n, err
}

func (r *ticketRepo) ContarConStatus(ctx context.Context, statuses []string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("status IN ?", statuses).
		Count(&n).Error
	return n, err
}

func (r *ticketRepo) SumarCostos(ctx context.Context, desde *time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("costo IS NOT NULL")
	if desde != nil {
		q = q.Where("created_at >= ?", *desde)
	}

	var suma decimal.Decimal
	err := q.Select("COALESCE(SUM(costo), 0)").Row().Scan(&suma)
	return suma, err
}

func (r *ticketRepo) ListarTerminados(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Select("created_at", "updated_at").
		Where("status IN ?", []string{model.StatusReparado, model.StatusEntregado}).
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) ContarEntre(ctx context.Context, desde, hasta time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("created_at >= ? AND created_at < ?", desde, hasta).
		Count(&n).Error
	return n, err
}

func (r *ticketRepo) ConteoPorTipo(ctx context.Context, limite int) ([]TipoConteo, error) {
	var filas []TipoConteo
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Select("tipo_dispositivo AS tipo, COUNT(*) AS cantidad").
		Group("tipo_dispositivo").
		Order("cantidad desc").
		Limit(limite).
		Find(&filas).Error
	return filas, err
}
