package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"tallerpro/internal/infra"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mailer is the outbound mail dependency; satisfied by *infra.Mailer.
type Mailer interface {
	Enviar(p infra.SMTPParams, to, subject, htmlBody string) error
	Verificar(p infra.SMTPParams) error
}

// ResetService implements password recovery: a temporary password is
// generated, emailed to the user and set as the new credential. Token
// insert, password update and the SMTP send run in one transaction, so an
// email failure rolls the password change back instead of leaving the
// account with a credential nobody ever saw.
type ResetService interface {
	Solicitar(ctx context.Context, email string) (string, error)
}

const (
	maxResetsPorHora = 3
	vigenciaToken    = 30 * time.Minute
	mensajeGenerico  = "If the email exists, a password reset link has been sent."
	mensajeResetOK   = "Password reset email sent successfully. Please check your inbox."
	asuntoReset      = "Recuperación de Contraseña - TallerPro"
)

type resetService struct {
	usuarios repository.UsuarioRepository
	tokens   repository.TokenRepository
	configs  repository.ConfiguracionRepository
	mailer   Mailer
	cifrador *infra.Cifrador
	db       *gorm.DB
}

func NewResetService(
	usuarios repository.UsuarioRepository,
	tokens repository.TokenRepository,
	configs repository.ConfiguracionRepository,
	mailer Mailer,
	cifrador *infra.Cifrador,
	db *gorm.DB,
) ResetService {
	return &resetService{
		usuarios: usuarios,
		tokens:   tokens,
		configs:  configs,
		mailer:   mailer,
		cifrador: cifrador,
		db:       db,
	}
}

func (s *resetService) Solicitar(ctx context.Context, email string) (string, error) {
	user, err := s.usuarios.ObtenerPorEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || !user.Activo {
		// Anti-enumeration: unknown and inactive accounts get the same
		// answer as valid ones.
		return mensajeGenerico, nil
	}

	recientes, err := s.tokens.ContarRecientes(ctx, user.ID, time.Now().Add(-time.Hour))
	if err != nil {
		return "", err
	}
	if recientes >= maxResetsPorHora {
		return "", ErrLimiteReset
	}

	passwordTemporal, err := generarPasswordTemporal()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passwordTemporal), 12)
	if err != nil {
		return "", err
	}
	token, err := generarToken()
	if err != nil {
		return "", err
	}

	smtpParams, err := s.cargarSMTP(ctx)
	if err != nil {
		return "", err
	}

	err = runTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.tokens.CrearTx(tx, &model.PasswordResetToken{
			Token:     token,
			UsuarioID: user.ID,
			ExpiresAt: time.Now().Add(vigenciaToken),
		}); err != nil {
			return err
		}
		if err := s.usuarios.ActualizarPasswordTx(tx, user.ID, string(hash)); err != nil {
			return err
		}
		// The send is the last step inside the transaction: if SMTP fails
		// the new password never becomes effective.
		if err := s.mailer.Enviar(smtpParams, user.Email, asuntoReset, cuerpoReset(passwordTemporal)); err != nil {
			log.Error().Err(err).Msg("reset: fallo el envio de correo")
			return ErrEmailNoConfigurado
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return mensajeResetOK, nil
}

func (s *resetService) cargarSMTP(ctx context.Context) (infra.SMTPParams, error) {
	cfg, err := s.configs.ObtenerEmailActiva(ctx)
	if err != nil {
		return infra.SMTPParams{}, ErrEmailNoConfigurado
	}
	password, err := s.cifrador.Decrypt(cfg.SMTPPassword)
	if err != nil {
		return infra.SMTPParams{}, ErrEmailNoConfigurado
	}
	return infra.SMTPParams{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		User:      cfg.SMTPUser,
		Password:  password,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	}, nil
}

// ── Generación de credenciales ────────────────────────────────────────────────

const (
	mayusculas    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	minusculas    = "abcdefghijklmnopqrstuvwxyz"
	digitos       = "0123456789"
	simbolos      = "!@#$%^&*"
	largoTemporal = 12
)

// generarPasswordTemporal builds a 12-char password with at least one
// uppercase, one lowercase, one digit and one symbol, then shuffles.
func generarPasswordTemporal() (string, error) {
	todos := mayusculas + minusculas + digitos + simbolos

	chars := make([]byte, 0, largoTemporal)
	for _, set := range []string{mayusculas, minusculas, digitos, simbolos} {
		c, err := azar(set)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < largoTemporal {
		c, err := azar(todos)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates so the guaranteed characters are not predictable prefixes
	for i := len(chars) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		chars[i], chars[j.Int64()] = chars[j.Int64()], chars[i]
	}
	return string(chars), nil
}

func azar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

func generarToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func cuerpoReset(passwordTemporal string) string {
	return fmt.Sprintf(`
<h2>Recuperación de Contraseña</h2>
<p>Recibimos una solicitud para restablecer tu contraseña en <strong>TallerPro</strong>.</p>
<p>Tu nueva contraseña temporal es:</p>
<p style="font-size:24px;font-weight:bold">%s</p>
<ul>
  <li>Esta contraseña es temporal y expirará en <strong>30 minutos</strong></li>
  <li>Cámbiala inmediatamente después de iniciar sesión</li>
  <li>Si no solicitaste este cambio, ignora este correo</li>
</ul>
<p>Saludos,<br>El equipo de TallerPro</p>`, passwordTemporal)
}
