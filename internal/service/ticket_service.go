package service

import (
	"context"
	"strings"

	"tallerpro/internal/dto"
	"tallerpro/internal/infra"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"
)

// tipoDispositivoDefault se usa cuando el ingreso no indica tipo de equipo.
const tipoDispositivoDefault = "Otro"

// limiteListadoTickets acota el listado del dashboard.
const limiteListadoTickets = 100

type TicketService interface {
	Crear(ctx context.Context, req dto.CrearTicketRequest) (*dto.TicketResponse, error)
	// Obtener devuelve el ticket con la clave de desbloqueo descifrada;
	// es la única vista que la expone.
	Obtener(ctx context.Context, id uint) (*dto.TicketResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarTicketRequest) (*dto.TicketResponse, error)
	Listar(ctx context.Context, filtro dto.TicketFilter) (*dto.TicketsResponse, error)
}

type ticketService struct {
	tickets  repository.TicketRepository
	clientes repository.ClienteRepository
	cifrador *infra.Cifrador
}

func NewTicketService(tickets repository.TicketRepository, clientes repository.ClienteRepository, cifrador *infra.Cifrador) TicketService {
	return &ticketService{tickets: tickets, clientes: clientes, cifrador: cifrador}
}

// mapTicket arma la respuesta; password viene descifrado y solo se pasa
// desde la vista de detalle.
func mapTicket(t model.Ticket, password string) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:              t.ID,
		Codigo:          t.Codigo,
		ClienteID:       t.ClienteID,
		TipoDispositivo: t.TipoDispositivo,
		MarcaModelo:     t.MarcaModelo,
		NumeroSerie:     t.NumeroSerie,
		Descripcion:     t.Descripcion,
		Password:        password,
		Diagnostico:     t.Diagnostico,
		Costo:           t.Costo,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.Cliente != nil {
		c := mapCliente(*t.Cliente)
		resp.Cliente = &c
	}
	return resp
}

func (s *ticketService) Crear(ctx context.Context, req dto.CrearTicketRequest) (*dto.TicketResponse, error) {
	if strings.TrimSpace(req.Descripcion) == "" {
		return nil, ErrDescripcionRequerida
	}
	if _, err := s.clientes.ObtenerPorID(ctx, req.ClienteID); err != nil {
		return nil, ErrClienteNoEncontrado
	}

	tipo := strings.TrimSpace(req.TipoDispositivo)
	if tipo == "" {
		tipo = tipoDispositivoDefault
	}

	t := model.Ticket{
		ClienteID:       req.ClienteID,
		TipoDispositivo: tipo,
		MarcaModelo:     strings.TrimSpace(req.MarcaModelo),
		NumeroSerie:     strings.TrimSpace(req.NumeroSerie),
		Descripcion:     strings.TrimSpace(req.Descripcion),
		Status:          model.StatusRecibido,
	}
	if req.Password != "" {
		cifrado, err := s.cifrador.Encrypt(req.Password)
		if err != nil {
			return nil, err
		}
		t.PasswordCifrado = cifrado
	}

	if err := s.tickets.Crear(ctx, &t); err != nil {
		return nil, err
	}

	creado, err := s.tickets.ObtenerPorID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	resp := mapTicket(*creado, "")
	return &resp, nil
}

func (s *ticketService) Obtener(ctx context.Context, id uint) (*dto.TicketResponse, error) {
	t, err := s.tickets.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrTicketNoEncontrado
	}

	password := ""
	if t.PasswordCifrado != "" {
		// Un blob indescifrable (clave rotada) no debe tumbar la vista.
		if claro, err := s.cifrador.Decrypt(t.PasswordCifrado); err == nil {
			password = claro
		}
	}
	resp := mapTicket(*t, password)
	return &resp, nil
}

func (s *ticketService) Actualizar(ctx context.Context, id uint, req dto.ActualizarTicketRequest) (*dto.TicketResponse, error) {
	campos := map[string]interface{}{}
	if req.Diagnostico != nil {
		campos["diagnostico"] = *req.Diagnostico
	}
	if req.Costo != nil {
		campos["costo"] = *req.Costo
	}
	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		if !model.StatusValido(status) {
			return nil, ErrStatusInvalido
		}
		campos["status"] = status
	}

	if len(campos) == 0 {
		// Sin cambios: devolver la fila tal cual está.
		return s.Obtener(ctx, id)
	}

	t, err := s.tickets.Actualizar(ctx, id, campos)
	if err != nil {
		return nil, ErrTicketNoEncontrado
	}
	resp := mapTicket(*t, "")
	return &resp, nil
}

func (s *ticketService) Listar(ctx context.Context, filtro dto.TicketFilter) (*dto.TicketsResponse, error) {
	tickets, err := s.tickets.Listar(ctx, filtro, limiteListadoTickets)
	if err != nil {
		return nil, err
	}
	conteo, err := s.tickets.ConteoPorStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := dto.TicketsResponse{
		Tickets: make([]dto.TicketResponse, len(tickets)),
		Stats:   conteo,
	}
	for i, t := range tickets {
		resp.Tickets[i] = mapTicket(t, "")
	}
	return &resp, nil
}
