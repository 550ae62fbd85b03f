package service

import "errors"

// Sentinel errors shared across services. Handlers translate them to HTTP
// statuses: *NoEncontrado → 404, ErrLimiteReset → 429,
// ErrEmailNoConfigurado → 500, the rest → 400/401.
var (
	ErrClienteNoEncontrado = errors.New("Cliente no encontrado")
	ErrTicketNoEncontrado  = errors.New("Ticket no encontrado")
	ErrUsuarioNoEncontrado = errors.New("Usuario no encontrado")

	ErrCatalogoNoEncontrado = errors.New("Registro no encontrado")

	ErrCredencialesInvalidas = errors.New("Credenciales invalidas")
	ErrUsuarioInactivo       = errors.New("Usuario inactivo")

	ErrEmailRegistrado = errors.New("Email already exists")
	ErrNombreDuplicado = errors.New("Este nombre ya existe")

	ErrDescripcionRequerida = errors.New("ID de cliente y descripcion son requeridos")
	ErrStatusInvalido       = errors.New("Status invalido")

	ErrLimiteReset        = errors.New("Too many reset attempts. Please try again later.")
	ErrEmailNoConfigurado = errors.New("Email service is not configured. Please contact the administrator.")
	ErrSMTPInvalido       = errors.New("Failed to connect to SMTP server. Please check your credentials.")
	ErrConfigEmailAusente = errors.New("No email configuration found")
)
