package dto

import "github.com/shopspring/decimal"

type MesCantidad struct {
	Mes      string `json:"mes"`
	Cantidad int64  `json:"cantidad"`
}

type TipoCantidad struct {
	Tipo     string `json:"tipo"`
	Cantidad int64  `json:"cantidad"`
}

// StatsResponse is computed fresh on every call — no caching.
type StatsResponse struct {
	TotalTickets       int64           `json:"totalTickets"`
	TicketsCompletados int64           `json:"ticketsCompletados"`
	TicketsActivos     int64           `json:"ticketsActivos"`
	IngresoTotal       decimal.Decimal `json:"ingresoTotal"`
	IngresoMesActual   decimal.Decimal `json:"ingresoMesActual"`
	// PromedioReparacion es el promedio de dias (redondeados hacia arriba
	// por ticket) entre ingreso y ultima actualizacion de los terminados
	PromedioReparacion  float64        `json:"promedioReparacion"`
	TicketsPorMes       []MesCantidad  `json:"ticketsPorMes"`
	ServiciosMasComunes []TipoCantidad `json:"serviciosMasComunes"`
}

type StatsEnvelope struct {
	Stats StatsResponse `json:"stats"`
}
