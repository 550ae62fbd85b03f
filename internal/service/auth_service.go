package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tallerpro/internal/config"
	"tallerpro/internal/dto"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ObtenerUsuario(ctx context.Context, id uint) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	EliminarUsuario(ctx context.Context, id uint) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func mapUsuario(u model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.ObtenerPorEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	if !user.Activo {
		return nil, ErrUsuarioInactivo
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredencialesInvalidas
	}

	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.ObtenerPorID(ctx, uint(idFloat))
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) buildLoginResponse(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         mapUsuario(*user),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if existing, err := s.repo.ObtenerPorEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailRegistrado
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}

	rol := req.Rol
	if rol == "" {
		rol = model.RolUser
	}
	user := &model.Usuario{
		Nombre:       req.Nombre,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	if err := s.repo.Crear(ctx, user); err != nil {
		return nil, err
	}
	resp := mapUsuario(*user)
	return &resp, nil
}

func (s *authService) ObtenerUsuario(ctx context.Context, id uint) (*dto.UsuarioResponse, error) {
	user, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	resp := mapUsuario(*user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i, u := range users {
		resp[i] = mapUsuario(u)
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}

	if req.Email != "" {
		// Reject emails already taken by a *different* user
		if existing, err := s.repo.ObtenerPorEmail(ctx, req.Email); err == nil && existing.ID != id {
			return nil, ErrEmailRegistrado
		}
		user.Email = strings.ToLower(req.Email)
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.Activo != nil {
		user.Activo = *req.Activo
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Actualizar(ctx, user); err != nil {
		return nil, err
	}
	resp := mapUsuario(*user)
	return &resp, nil
}

func (s *authService) EliminarUsuario(ctx context.Context, id uint) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return ErrUsuarioNoEncontrado
	}
	return s.repo.Eliminar(ctx, id)
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"nombre":  user.Nombre,
		"rol":     user.Rol,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
