package service

import (
	"context"
	"strings"

	"tallerpro/internal/dto"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"
)

// ticketsRecientesPorCliente limita el historial que acompaña la búsqueda
// por cédula; la vista de detalle trae el historial completo.
const ticketsRecientesPorCliente = 5

type ClienteService interface {
	// Buscar localiza un cliente por cédula con sus tickets más recientes.
	Buscar(ctx context.Context, cedula string) (*dto.ClienteResponse, error)
	// Guardar crea o sobreescribe por cédula (upsert).
	Guardar(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error)
	ListarTodos(ctx context.Context) ([]dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	resp := dto.ClienteResponse{
		ID:        c.ID,
		Cedula:    c.Cedula,
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if len(c.Tickets) > 0 {
		resp.Tickets = make([]dto.TicketResponse, len(c.Tickets))
		for i, t := range c.Tickets {
			resp.Tickets[i] = mapTicket(t, "")
		}
	}
	return resp
}

func (s *clienteService) Buscar(ctx context.Context, cedula string) (*dto.ClienteResponse, error) {
	cedula = strings.TrimSpace(cedula)
	c, err := s.repo.ObtenerPorCedula(ctx, cedula, ticketsRecientesPorCliente)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	resp := mapCliente(*c)
	return &resp, nil
}

func (s *clienteService) Guardar(ctx context.Context, req dto.GuardarClienteRequest) (*dto.ClienteResponse, error) {
	c := model.Cliente{
		Cedula:    strings.TrimSpace(req.Cedula),
		Nombre:    strings.TrimSpace(req.Nombre),
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
	}
	if err := s.repo.Upsert(ctx, &c); err != nil {
		return nil, err
	}

	// Releer la fila: el upsert no devuelve los timestamps definitivos.
	guardado, err := s.repo.ObtenerPorCedula(ctx, c.Cedula, 0)
	if err != nil {
		return nil, err
	}
	resp := mapCliente(*guardado)
	return &resp, nil
}

func (s *clienteService) ListarTodos(ctx context.Context) ([]dto.ClienteResponse, error) {
	filas, err := s.repo.ListarConConteo(ctx)
	if err != nil {
		return nil, err
	}

	clientes := make([]dto.ClienteResponse, len(filas))
	for i, f := range filas {
		resp := mapCliente(f.Cliente)
		resp.Count = &dto.TicketCount{Tickets: f.TotalTickets}
		clientes[i] = resp
	}
	return clientes, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error) {
	c, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrClienteNoEncontrado
	}
	resp := mapCliente(*c)
	return &resp, nil
}
