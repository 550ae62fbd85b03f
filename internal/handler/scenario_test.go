package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"tallerpro/internal/dto"
	"tallerpro/internal/infra"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"
	"tallerpro/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory repos ───────────────────────────────────────────────────────────

type memClienteRepo struct {
	clientes map[uint]*model.Cliente
	nextID   uint
}

func newMemClienteRepo() *memClienteRepo {
	return &memClienteRepo{clientes: make(map[uint]*model.Cliente), nextID: 1}
}

func (r *memClienteRepo) Upsert(_ context.Context, c *model.Cliente) error {
	for _, prev := range r.clientes {
		if prev.Cedula == c.Cedula {
			prev.Nombre, prev.Telefono, prev.Email, prev.Direccion = c.Nombre, c.Telefono, c.Email, c.Direccion
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
	r.clientes[c.ID] = &clon
	return nil
}

func (r *memClienteRepo) ObtenerPorCedula(_ context.Context, cedula string, limite int) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula {
			out := *c
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memClienteRepo) ObtenerPorID(_ context.Context, id uint) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *c
	return &out, nil
}

func (r *memClienteRepo) ListarConConteo(_ context.Context) ([]repository.ClienteConConteo, error) {
	var out []repository.ClienteConConteo
	for _, c := range r.clientes {
		out = append(out, repository.ClienteConConteo{Cliente: *c})
	}
	return out, nil
}

type memTicketRepo struct {
	tickets  map[uint]*model.Ticket
	nextID   uint
	clientes *memClienteRepo
}

func newMemTicketRepo(clientes *memClienteRepo) *memTicketRepo {
	return &memTicketRepo{tickets: make(map[uint]*model.Ticket), nextID: 1, clientes: clientes}
}

func (r *memTicketRepo) Crear(_ context.Context, t *model.Ticket) error {
	t.ID = r.nextID
	r.nextID++
	t.Codigo = fmt.Sprintf("TKT-%05d", t.ID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	clon := *t
	r.tickets[t.ID] = &clon
	return nil
}

func (r *memTicketRepo) ObtenerPorID(_ context.Context, id uint) (*model.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *t
	if c, ok := r.clientes.clientes[out.ClienteID]; ok {
		clon := *c
		out.Cliente = &clon
	}
	return &out, nil
}

func (r *memTicketRepo) Actualizar(ctx context.Context, id uint, campos map[string]interface{}) (*model.Ticket, error) {
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

func (r *memTicketRepo) Listar(ctx context.Context, filtro dto.TicketFilter, limite int) ([]model.Ticket, error) {
	var out []model.Ticket
	for id := range r.tickets {
		t, _ := r.ObtenerPorID(ctx, id)
		if filtro.Status != "" && filtro.Status != "ALL" && t.Status != filtro.Status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (r *memTicketRepo) ConteoPorStatus(_ context.Context) (map[string]int64, error) {
	conteo := make(map[string]int64)
	for _, t := range r.tickets {
		conteo[t.Status]++
	}
	return conteo, nil
}

func (r *memTicketRepo) Contar(_ context.Context) (int64, error) {
	return int64(len(r.tickets)), nil
}

func (r *memTicketRepo) ContarConStatus(_ context.Context, statuses []string) (int64, error) {
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

func (r *memTicketRepo) SumarCostos(_ context.Context, desde *time.Time) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, t := range r.tickets {
		if t.Costo == nil || (desde != nil && t.CreatedAt.Before(*desde)) {
			continue
		}
		suma = suma.Add(*t.Costo)
	}
	return suma, nil
}

func (r *memTicketRepo) ListarTerminados(_ context.Context) ([]model.Ticket, error) {
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.Status == model.StatusReparado || t.Status == model.StatusEntregado {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTicketRepo) ContarEntre(_ context.Context, desde, hasta time.Time) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if !t.CreatedAt.Before(desde) && t.CreatedAt.Before(hasta) {
			n++
		}
	}
	return n, nil
}

func (r *memTicketRepo) ConteoPorTipo(_ context.Context, limite int) ([]repository.TipoConteo, error) {
	porTipo := make(map[string]int64)
	for _, t := range r.tickets {
		porTipo[t.TipoDispositivo]++
	}
	var out []repository.TipoConteo
	for tipo, n := range porTipo {
		out = append(out, repository.TipoConteo{Tipo: tipo, Cantidad: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cantidad > out[j].Cantidad })
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

// ── Router de prueba (sin autenticación) ─────────────────────────────────────

func newScenarioRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cifrador, err := infra.NewCifrador("handler-tests-encryption-key-32chars")
	assert.NoError(t, err)

	clienteRepo := newMemClienteRepo()
	ticketRepo := newMemTicketRepo(clienteRepo)

	clientesH := NewClientesHandler(service.NewClienteService(clienteRepo))
	ticketsH := NewTicketsHandler(service.NewTicketService(ticketRepo, clienteRepo, cifrador))
	statsH := NewStatsHandler(service.NewStatsService(ticketRepo))

	r := gin.New()
	r.GET("/clients", clientesH.Buscar)
	r.POST("/clients", clientesH.Guardar)
	r.GET("/clients/all", clientesH.ListarTodos)
	r.GET("/clients/:id", clientesH.Obtener)
	r.GET("/tickets", ticketsH.Listar)
	r.POST("/tickets", ticketsH.Crear)
	r.GET("/tickets/:id", ticketsH.Obtener)
	r.PATCH("/tickets/:id", ticketsH.Actualizar)
	r.GET("/stats", statsH.Obtener)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Flujo completo de mostrador: cliente nuevo, ingreso de equipo,
// reparación y panel de estadísticas.
func TestEscenarioTallerCompleto(t *testing.T) {
	r := newScenarioRouter(t)

	// 1. Registrar cliente
	w := doJSON(t, r, http.MethodPost, "/clients", dto.GuardarClienteRequest{
		Cedula: "9001", Nombre: "Carlos Jiménez",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var clienteResp dto.ClienteDetalleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &clienteResp))
	clienteID := clienteResp.Client.ID
	assert.NotZero(t, clienteID)

	// 2. Ingresar el equipo
	w = doJSON(t, r, http.MethodPost, "/tickets", dto.CrearTicketRequest{
		ClienteID:       clienteID,
		TipoDispositivo: "Laptop",
		Descripcion:     "no enciende",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var ticketResp dto.TicketDetalleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticketResp))
	assert.Equal(t, "TKT-00001", ticketResp.Ticket.Codigo)
	assert.Equal(t, model.StatusRecibido, ticketResp.Ticket.Status)

	// 3. Cerrar la reparación
	diag := "fuente de poder dañada"
	costo := decimal.NewFromInt(45000)
	status := model.StatusReparado
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/tickets/%d", ticketResp.Ticket.ID),
		dto.ActualizarTicketRequest{Diagnostico: &diag, Costo: &costo, Status: &status})
	assert.Equal(t, http.StatusOK, w.Code)

	// 4. El detalle refleja diagnóstico, costo y estado
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/tickets/%d", ticketResp.Ticket.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var detalle dto.TicketDetalleResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detalle))
	assert.Equal(t, "fuente de poder dañada", *detalle.Ticket.Diagnostico)
	assert.True(t, detalle.Ticket.Costo.Equal(costo))
	assert.Equal(t, model.StatusReparado, detalle.Ticket.Status)

	// 5. El panel suma el ticket terminado y su ingreso
	w = doJSON(t, r, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var stats dto.StatsEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Stats.TotalTickets)
	assert.Equal(t, int64(1), stats.Stats.TicketsCompletados)
	assert.Equal(t, int64(0), stats.Stats.TicketsActivos)
	assert.True(t, stats.Stats.IngresoTotal.Equal(decimal.NewFromInt(45000)))
}

func TestCrearTicket_ClienteInexistente_404(t *testing.T) {
	r := newScenarioRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tickets", dto.CrearTicketRequest{
		ClienteID: 404, Descripcion: "pantalla rota",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Cliente no encontrado")
}

func TestCrearTicket_SinDescripcion_400(t *testing.T) {
	r := newScenarioRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tickets", map[string]interface{}{"clientId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Descripcion")
}

func TestBuscarCliente_SinCedula_400(t *testing.T) {
	r := newScenarioRouter(t)

	w := doJSON(t, r, http.MethodGet, "/clients", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuscarCliente_NoExiste_404(t *testing.T) {
	r := newScenarioRouter(t)

	w := doJSON(t, r, http.MethodGet, "/clients?cedula=000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListarClientes_Envelope(t *testing.T) {
	r := newScenarioRouter(t)

	doJSON(t, r, http.MethodPost, "/clients", dto.GuardarClienteRequest{Cedula: "1", Nombre: "Ana"})

	w := doJSON(t, r, http.MethodGet, "/clients/all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ClientesResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Clients, 1)
}

func TestActualizarTicket_StatusInvalido_400(t *testing.T) {
	r := newScenarioRouter(t)

	doJSON(t, r, http.MethodPost, "/clients", dto.GuardarClienteRequest{Cedula: "1", Nombre: "Ana"})
	doJSON(t, r, http.MethodPost, "/tickets", dto.CrearTicketRequest{ClienteID: 1, Descripcion: "x"})

	malo := "EXTRAVIADO"
	w := doJSON(t, r, http.MethodPatch, "/tickets/1", dto.ActualizarTicketRequest{Status: &malo})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
