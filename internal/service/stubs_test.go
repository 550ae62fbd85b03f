package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tallerpro/internal/dto"
	"tallerpro/internal/infra"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Not-found always surfaces as
// gorm.ErrRecordNotFound, same as the real gorm-backed repos.

// ── Usuarios ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users  map[uint]*model.Usuario
	nextID uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[uint]*model.Usuario), nextID: 1}
}

func (r *stubUsuarioRepo) Crear(_ context.Context, u *model.Usuario) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) ObtenerPorEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ObtenerPorID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) Listar(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Actualizar(_ context.Context, u *model.Usuario) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) ActualizarPasswordTx(_ *gorm.DB, id uint, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUsuarioRepo) Eliminar(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

// ── Tokens de reset ───────────────────────────────────────────────────────────

type stubTokenRepo struct {
	tokens []model.PasswordResetToken
}

func (r *stubTokenRepo) CrearTx(_ *gorm.DB, t *model.PasswordResetToken) error {
	t.ID = uint(len(r.tokens) + 1)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.tokens = append(r.tokens, *t)
	return nil
}

func (r *stubTokenRepo) ContarRecientes(_ context.Context, usuarioID uint, desde time.Time) (int64, error) {
	var n int64
	for _, t := range r.tokens {
		if t.UsuarioID == usuarioID && t.CreatedAt.After(desde) {
			n++
		}
	}
	return n, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uint]*model.Cliente
	nextID   uint
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uint]*model.Cliente), nextID: 1}
}

func (r *stubClienteRepo) Upsert(_ context.Context, c *model.Cliente) error {
	for _, prev := range r.clientes {
		if prev.Cedula == c.Cedula {
			prev.Nombre = c.Nombre
			prev.Telefono = c.Telefono
			prev.Email = c.Email
			prev.Direccion = c.Direccion
			prev.UpdatedAt = time.Now()
			c.ID = prev.ID
			return nil
		}
	}
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	clon := *c
	clon.Tickets = nil
	r.clientes[c.ID] = &clon
	return nil
}

func (r *stubClienteRepo) ObtenerPorCedula(_ context.Context, cedula string, limite int) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula {
			out := *c
			if limite == 0 {
				out.Tickets = nil
			} else if len(out.Tickets) > limite {
				out.Tickets = out.Tickets[:limite]
			}
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) ObtenerPorID(_ context.Context, id uint) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

func (r *stubClienteRepo) ListarConConteo(_ context.Context) ([]repository.ClienteConConteo, error) {
	out := make([]repository.ClienteConConteo, 0, len(r.clientes))
	for _, c := range r.clientes {
		clon := *c
		total := int64(len(clon.Tickets))
		clon.Tickets = nil
		out = append(out, repository.ClienteConConteo{Cliente: clon, TotalTickets: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cliente.ID < out[j].Cliente.ID })
	return out, nil
}

// ── Tickets ───────────────────────────────────────────────────────────────────

type stubTicketRepo struct {
	tickets  map[uint]*model.Ticket
	nextID   uint
	clientes *stubClienteRepo
}

func newStubTicketRepo(clientes *stubClienteRepo) *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[uint]*model.Ticket), nextID: 1, clientes: clientes}
}

func (r *stubTicketRepo) Crear(_ context.Context, t *model.Ticket) error {
	t.ID = r.nextID
	r.nextID++
	t.Codigo = fmt.Sprintf("TKT-%05d", t.ID)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	clon := *t
	r.tickets[t.ID] = &clon
	return nil
}

func (r *stubTicketRepo) ObtenerPorID(_ context.Context, id uint) (*model.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *t
	if r.clientes != nil {
		if c, ok := r.clientes.clientes[out.ClienteID]; ok {
			clon := *c
			clon.Tickets = nil
			out.Cliente = &clon
		}
	}
	return &out, nil
}

func (r *stubTicketRepo) Actualizar(ctx context.Context, id uint, campos map[string]interface{}) (*model.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := campos["diagnostico"]; ok {
		d := v.(string)
		t.Diagnostico = &d
	}
	if v, ok := campos["costo"]; ok {
		c := v.(decimal.Decimal)
		t.Costo = &c
	}
	if v, ok := campos["status"]; ok {
		t.Status = v.(string)
	}
	t.UpdatedAt = time.Now()
	return r.ObtenerPorID(ctx, id)
}

func (r *stubTicketRepo) Listar(ctx context.Context, filtro dto.TicketFilter, limite int) ([]model.Ticket, error) {
	ids := make([]uint, 0, len(r.tickets))
	for id := range r.tickets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var out []model.Ticket
	for _, id := range ids {
		t, _ := r.ObtenerPorID(ctx, id)
		if filtro.Status != "" && filtro.Status != "ALL" && t.Status != filtro.Status {
			continue
		}
		if filtro.Busqueda != "" {
			b := strings.ToLower(filtro.Busqueda)
			hay := strings.ToLower(strings.Join([]string{t.Codigo, t.TipoDispositivo, t.MarcaModelo}, " "))
			if t.Cliente != nil {
				hay += " " + strings.ToLower(t.Cliente.Nombre+" "+t.Cliente.Cedula)
			}
			if !strings.Contains(hay, b) {
				continue
			}
		}
		out = append(out, *t)
		if len(out) == limite {
			break
		}
	}
	return out, nil
}

func (r *stubTicketRepo) ConteoPorStatus(_ context.Context) (map[string]int64, error) {
	conteo := make(map[string]int64)
	for _, t := range r.tickets {
		conteo[t.Status]++
	}
	return conteo, nil
}

func (r *stubTicketRepo) Contar(_ context.Context) (int64, error) {
	return int64(len(r.tickets)), nil
}

func (r *stubTicketRepo) ContarConStatus(_ context.Context, statuses []string) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		for _, s := range statuses {
			if t.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *stubTicketRepo) SumarCostos(_ context.Context, desde *time.Time) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, t := range r.tickets {
		if t.Costo == nil {
			continue
		}
		if desde != nil && t.CreatedAt.Before(*desde) {
			continue
		}
		suma = suma.Add(*t.Costo)
	}
	return suma, nil
}

func (r *stubTicketRepo) ListarTerminados(_ context.Context) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.Status == model.StatusReparado || t.Status == model.StatusEntregado {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTicketRepo) ContarEntre(_ context.Context, desde, hasta time.Time) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if !t.CreatedAt.Before(desde) && t.CreatedAt.Before(hasta) {
			n++
		}
	}
	return n, nil
}

func (r *stubTicketRepo) ConteoPorTipo(_ context.Context, limite int) ([]repository.TipoConteo, error) {
	porTipo := make(map[string]int64)
	for _, t := range r.tickets {
		porTipo[t.TipoDispositivo]++
	}
	out := make([]repository.TipoConteo, 0, len(porTipo))
	for tipo, n := range porTipo {
		out = append(out, repository.TipoConteo{Tipo: tipo, Cantidad: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Tipo < out[j].Tipo
	})
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

// ── Catálogos ─────────────────────────────────────────────────────────────────

type stubTipoRepo struct {
	tipos  map[uint]*model.TipoDispositivo
	nextID uint
}

func newStubTipoRepo() *stubTipoRepo {
	return &stubTipoRepo{tipos: make(map[uint]*model.TipoDispositivo), nextID: 1}
}

func (r *stubTipoRepo) Crear(_ context.Context, t *model.TipoDispositivo) error {
	t.ID = r.nextID
	r.nextID++
	clon := *t
	r.tipos[t.ID] = &clon
	return nil
}

func (r *stubTipoRepo) Listar(_ context.Context, incluirInactivos bool) ([]model.TipoDispositivo, error) {
	var out []model.TipoDispositivo
	for _, t := range r.tipos {
		if incluirInactivos || t.Activo {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubTipoRepo) ObtenerPorID(_ context.Context, id uint) (*model.TipoDispositivo, error) {
	t, ok := r.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *t
	return &out, nil
}

func (r *stubTipoRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.TipoDispositivo, error) {
	for _, t := range r.tipos {
		if strings.EqualFold(t.Nombre, nombre) {
			out := *t
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTipoRepo) Actualizar(_ context.Context, t *model.TipoDispositivo) error {
	if _, ok := r.tipos[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clon := *t
	r.tipos[t.ID] = &clon
	return nil
}

func (r *stubTipoRepo) Desactivar(_ context.Context, id uint) error {
	t, ok := r.tipos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Activo = false
	return nil
}

type stubMarcaRepo struct {
	marcas map[uint]*model.Marca
	nextID uint
}

func newStubMarcaRepo() *stubMarcaRepo {
	return &stubMarcaRepo{marcas: make(map[uint]*model.Marca), nextID: 1}
}

func (r *stubMarcaRepo) Crear(_ context.Context, m *model.Marca) error {
	m.ID = r.nextID
	r.nextID++
	clon := *m
	r.marcas[m.ID] = &clon
	return nil
}

func (r *stubMarcaRepo) Listar(_ context.Context, incluirInactivos bool) ([]model.Marca, error) {
	var out []model.Marca
	for _, m := range r.marcas {
		if incluirInactivos || m.Activo {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *stubMarcaRepo) ObtenerPorID(_ context.Context, id uint) (*model.Marca, error) {
	m, ok := r.marcas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *m
	return &out, nil
}

func (r *stubMarcaRepo) ObtenerPorNombre(_ context.Context, nombre string) (*model.Marca, error) {
	for _, m := range r.marcas {
		if strings.EqualFold(m.Nombre, nombre) {
			out := *m
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMarcaRepo) Actualizar(_ context.Context, m *model.Marca) error {
	if _, ok := r.marcas[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clon := *m
	r.marcas[m.ID] = &clon
	return nil
}

func (r *stubMarcaRepo) Desactivar(_ context.Context, id uint) error {
	m, ok := r.marcas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Activo = false
	return nil
}

// ── Configuración ─────────────────────────────────────────────────────────────

type stubConfigRepo struct {
	negocio *model.ConfigNegocio
	emails  []*model.ConfigEmail
}

func (r *stubConfigRepo) ObtenerNegocio(_ context.Context) (*model.ConfigNegocio, error) {
	if r.negocio == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r.negocio
	return &out, nil
}

func (r *stubConfigRepo) CrearNegocio(_ context.Context, c *model.ConfigNegocio) error {
	c.ID = 1
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	clon := *c
	r.negocio = &clon
	return nil
}

func (r *stubConfigRepo) ActualizarNegocio(_ context.Context, c *model.ConfigNegocio) error {
	if r.negocio == nil {
		return gorm.ErrRecordNotFound
	}
	c.UpdatedAt = time.Now()
	clon := *c
	r.negocio = &clon
	return nil
}

func (r *stubConfigRepo) ObtenerEmailActiva(_ context.Context) (*model.ConfigEmail, error) {
	for i := len(r.emails) - 1; i >= 0; i-- {
		if r.emails[i].Activo {
			out := *r.emails[i]
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubConfigRepo) GuardarEmail(_ context.Context, c *model.ConfigEmail) error {
	for _, prev := range r.emails {
		prev.Activo = false
	}
	c.ID = uint(len(r.emails) + 1)
	c.Activo = true
	c.CreatedAt = time.Now()
	clon := *c
	r.emails = append(r.emails, &clon)
	return nil
}

// ── Mailer ────────────────────────────────────────────────────────────────────

type stubMailer struct {
	fallaEnvio        bool
	fallaVerificacion bool
	enviados          []string // destinatarios
	cuerpos           []string
}

func (m *stubMailer) Enviar(_ infra.SMTPParams, to, _ string, htmlBody string) error {
	if m.fallaEnvio {
		return errors.New("smtp: connection refused")
	}
	m.enviados = append(m.enviados, to)
	m.cuerpos = append(m.cuerpos, htmlBody)
	return nil
}

func (m *stubMailer) Verificar(_ infra.SMTPParams) error {
	if m.fallaVerificacion {
		return errors.New("smtp: auth failed")
	}
	return nil
}
