package service

import (
	"context"
	"errors"
	"strings"

	"tallerpro/internal/dto"
	"tallerpro/internal/infra"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"

	"gorm.io/gorm"
)

const nombreNegocioDefault = "TallerPro"

type ConfiguracionService interface {
	// ObtenerNegocio crea la fila con valores por defecto si aún no existe.
	ObtenerNegocio(ctx context.Context) (*dto.NegocioResponse, error)
	GuardarNegocio(ctx context.Context, req dto.GuardarNegocioRequest) (*dto.NegocioResponse, error)

	ObtenerEmail(ctx context.Context) (*dto.EmailConfigEnvelope, error)
	// GuardarEmail verifica el handshake SMTP con las credenciales en claro
	// antes de cifrar y persistir; una configuración que no conecta no se
	// guarda.
	GuardarEmail(ctx context.Context, req dto.GuardarEmailRequest) (*dto.EmailConfigResponse, error)
	EnviarPrueba(ctx context.Context, destino string) error
}

type configuracionService struct {
	repo     repository.ConfiguracionRepository
	cifrador *infra.Cifrador
	mailer   Mailer
}

func NewConfiguracionService(repo repository.ConfiguracionRepository, cifrador *infra.Cifrador, mailer Mailer) ConfiguracionService {
	return &configuracionService{repo: repo, cifrador: cifrador, mailer: mailer}
}

func mapNegocio(c model.ConfigNegocio) dto.NegocioResponse {
	return dto.NegocioResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Lema:          c.Lema,
		Telefono:      c.Telefono,
		Email:         c.Email,
		Direccion:     c.Direccion,
		SitioWeb:      c.SitioWeb,
		MensajeTicket: c.MensajeTicket,
		LogoURL:       c.LogoURL,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func mapConfigEmail(c model.ConfigEmail) dto.EmailConfigResponse {
	return dto.EmailConfigResponse{
		ID:        c.ID,
		SMTPHost:  c.SMTPHost,
		SMTPPort:  c.SMTPPort,
		SMTPUser:  c.SMTPUser,
		FromEmail: c.FromEmail,
		FromName:  c.FromName,
		Activo:    c.Activo,
		CreatedAt: c.CreatedAt,
	}
}

func (s *configuracionService) ObtenerNegocio(ctx context.Context) (*dto.NegocioResponse, error) {
	c, err := s.repo.ObtenerNegocio(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		nuevo := model.ConfigNegocio{Nombre: nombreNegocioDefault}
		if err := s.repo.CrearNegocio(ctx, &nuevo); err != nil {
			return nil, err
		}
		c = &nuevo
	}
	resp := mapNegocio(*c)
	return &resp, nil
}

func (s *configuracionService) GuardarNegocio(ctx context.Context, req dto.GuardarNegocioRequest) (*dto.NegocioResponse, error) {
	c, err := s.repo.ObtenerNegocio(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		c = &model.ConfigNegocio{}
	}

	// Sobreescritura completa: los opcionales omitidos quedan en null.
	c.Nombre = strings.TrimSpace(req.Nombre)
	c.Lema = req.Lema
	c.Telefono = req.Telefono
	c.Email = req.Email
	c.Direccion = req.Direccion
	c.SitioWeb = req.SitioWeb
	c.MensajeTicket = req.MensajeTicket
	c.LogoURL = req.LogoURL

	if c.ID == 0 {
		err = s.repo.CrearNegocio(ctx, c)
	} else {
		err = s.repo.ActualizarNegocio(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	resp := mapNegocio(*c)
	return &resp, nil
}

func (s *configuracionService) ObtenerEmail(ctx context.Context) (*dto.EmailConfigEnvelope, error) {
	c, err := s.repo.ObtenerEmailActiva(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EmailConfigEnvelope{Exists: false}, nil
		}
		return nil, err
	}
	resp := mapConfigEmail(*c)
	return &dto.EmailConfigEnvelope{Exists: true, Config: &resp}, nil
}

func (s *configuracionService) GuardarEmail(ctx context.Context, req dto.GuardarEmailRequest) (*dto.EmailConfigResponse, error) {
	params := infra.SMTPParams{
		Host:      req.SMTPHost,
		Port:      req.SMTPPort,
		User:      req.SMTPUser,
		Password:  req.SMTPPassword,
		FromEmail: req.FromEmail,
		FromName:  req.FromName,
	}
	if err := s.mailer.Verificar(params); err != nil {
		return nil, ErrSMTPInvalido
	}

	cifrado, err := s.cifrador.Encrypt(req.SMTPPassword)
	if err != nil {
		return nil, err
	}

	c := model.ConfigEmail{
		SMTPHost:     req.SMTPHost,
		SMTPPort:     req.SMTPPort,
		SMTPUser:     req.SMTPUser,
		SMTPPassword: cifrado,
		FromEmail:    req.FromEmail,
		FromName:     req.FromName,
	}
	if err := s.repo.GuardarEmail(ctx, &c); err != nil {
		return nil, err
	}
	resp := mapConfigEmail(c)
	return &resp, nil
}

func (s *configuracionService) EnviarPrueba(ctx context.Context, destino string) error {
	c, err := s.repo.ObtenerEmailActiva(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConfigEmailAusente
		}
		return err
	}

	password, err := s.cifrador.Decrypt(c.SMTPPassword)
	if err != nil {
		return err
	}
	params := infra.SMTPParams{
		Host:      c.SMTPHost,
		Port:      c.SMTPPort,
		User:      c.SMTPUser,
		Password:  password,
		FromEmail: c.FromEmail,
		FromName:  c.FromName,
	}

	cuerpo := "<p>Este es un correo de prueba de <strong>TallerPro</strong>.</p>" +
		"<p>Si lo estás leyendo, la configuración SMTP funciona correctamente.</p>"
	if err := s.mailer.Enviar(params, destino, "Correo de prueba - TallerPro", cuerpo); err != nil {
		return ErrSMTPInvalido
	}
	return nil
}
