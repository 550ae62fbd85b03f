package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"tallerpro/internal/dto"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"
)

const (
	mesesHistograma = 6
	topServicios    = 5
)

// mesesCortos son las abreviaturas en español para las etiquetas del
// histograma mensual ("ene 2026", "feb 2026", ...).
var mesesCortos = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

type StatsService interface {
	// Obtener calcula el panel completo en fresco; nada se cachea.
	Obtener(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	tickets repository.TicketRepository
	ahora   func() time.Time
}

func NewStatsService(tickets repository.TicketRepository) StatsService {
	return &statsService{tickets: tickets, ahora: time.Now}
}

func (s *statsService) Obtener(ctx context.Context) (*dto.StatsResponse, error) {
	ahora := s.ahora()

	total, err := s.tickets.Contar(ctx)
	if err != nil {
		return nil, err
	}
	// Completados y activos son conjuntos disjuntos de estados: un ticket
	// cuenta en exactamente una de las dos cifras.
	completados, err := s.tickets.ContarConStatus(ctx, []string{model.StatusReparado, model.StatusEntregado})
	if err != nil {
		return nil, err
	}
	activos, err := s.tickets.ContarConStatus(ctx, []string{model.StatusRecibido, model.StatusEnReparacion})
	if err != nil {
		return nil, err
	}

	ingresoTotal, err := s.tickets.SumarCostos(ctx, nil)
	if err != nil {
		return nil, err
	}
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	ingresoMes, err := s.tickets.SumarCostos(ctx, &inicioMes)
	if err != nil {
		return nil, err
	}

	promedio, err := s.promedioReparacion(ctx)
	if err != nil {
		return nil, err
	}

	porMes, err := s.ticketsPorMes(ctx, ahora)
	if err != nil {
		return nil, err
	}

	porTipo, err := s.tickets.ConteoPorTipo(ctx, topServicios)
	if err != nil {
		return nil, err
	}
	servicios := make([]dto.TipoCantidad, len(porTipo))
	for i, t := range porTipo {
		servicios[i] = dto.TipoCantidad{Tipo: t.Tipo, Cantidad: t.Cantidad}
	}

	return &dto.StatsResponse{
		TotalTickets:        total,
		TicketsCompletados:  completados,
		TicketsActivos:      activos,
		IngresoTotal:        ingresoTotal,
		IngresoMesActual:    ingresoMes,
		PromedioReparacion:  promedio,
		TicketsPorMes:       porMes,
		ServiciosMasComunes: servicios,
	}, nil
}

// promedioReparacion promedia los días de taller de los tickets terminados;
// cada ticket aporta los días entre ingreso y última actualización,
// redondeados hacia arriba (un arreglo de dos horas cuenta como un día).
func (s *statsService) promedioReparacion(ctx context.Context) (float64, error) {
	terminados, err := s.tickets.ListarTerminados(ctx)
	if err != nil {
		return 0, err
	}
	if len(terminados) == 0 {
		return 0, nil
	}

	var totalDias float64
	for _, t := range terminados {
		dias := math.Ceil(t.UpdatedAt.Sub(t.CreatedAt).Hours() / 24)
		if dias < 0 {
			dias = 0
		}
		totalDias += dias
	}
	return totalDias / float64(len(terminados)), nil
}

// ticketsPorMes arma el histograma de los últimos meses, del más antiguo al
// actual, incluyendo los meses con cero ingresos.
func (s *statsService) ticketsPorMes(ctx context.Context, ahora time.Time) ([]dto.MesCantidad, error) {
	out := make([]dto.MesCantidad, 0, mesesHistograma)
	for i := mesesHistograma - 1; i >= 0; i-- {
		inicio := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location()).AddDate(0, -i, 0)
		fin := inicio.AddDate(0, 1, 0)

		n, err := s.tickets.ContarEntre(ctx, inicio, fin)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.MesCantidad{
			Mes:      fmt.Sprintf("%s %d", mesesCortos[inicio.Month()-1], inicio.Year()),
			Cantidad: n,
		})
	}
	return out, nil
}
