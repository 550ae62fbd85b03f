package router

import (
	"time"

	"tallerpro/internal/config"
	"tallerpro/internal/handler"
	"tallerpro/internal/infra"
	"tallerpro/internal/middleware"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"
	"tallerpro/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, "api", 1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cifrador, err := infra.NewCifrador(cfg.EncryptionKey)
	if err != nil {
		// Config ya validó la clave; llegar aquí es un bug de arranque.
		panic(err)
	}
	mailer := infra.NewMailer()
	haciendaClient := infra.NewHaciendaClient(cfg.HaciendaAPIURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	tipoRepo := repository.NewTipoRepository(db)
	marcaRepo := repository.NewMarcaRepository(db)
	configRepo := repository.NewConfiguracionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	resetSvc := service.NewResetService(usuarioRepo, tokenRepo, configRepo, mailer, cifrador, db)
	clienteSvc := service.NewClienteService(clienteRepo)
	ticketSvc := service.NewTicketService(ticketRepo, clienteRepo, cifrador)
	catalogoSvc := service.NewCatalogoService(tipoRepo, marcaRepo)
	configSvc := service.NewConfiguracionService(configRepo, cifrador, mailer)
	statsSvc := service.NewStatsService(ticketRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, resetSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	ticketsH := handler.NewTicketsHandler(ticketSvc)
	catalogosH := handler.NewCatalogosHandler(catalogoSvc)
	configH := handler.NewConfiguracionHandler(configSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	haciendaH := handler.NewHaciendaHandler(haciendaClient)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/reset-password", middleware.ResetRateLimiter(rdb), authH.ResetPassword)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("", jwtMW)
	{
		api.GET("/clients", clientesH.Buscar)
		api.GET("/clients/all", clientesH.ListarTodos)
		api.GET("/clients/:id", clientesH.Obtener)
		api.POST("/clients", clientesH.Guardar)

		api.GET("/tickets", ticketsH.Listar)
		api.POST("/tickets", ticketsH.Crear)
		api.GET("/tickets/:id", ticketsH.Obtener)
		api.PATCH("/tickets/:id", ticketsH.Actualizar)

		usuarios := api.Group("/users", middleware.RequireRole(model.RolAdmin))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obtener)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}

		// Catálogos — lectura para todo usuario autenticado, escritura ADMIN
		api.GET("/catalogs/tipos", catalogosH.ListarTipos)
		api.GET("/catalogs/marcas", catalogosH.ListarMarcas)
		tipos := api.Group("/catalogs/tipos", middleware.RequireRole(model.RolAdmin))
		{
			tipos.POST("", catalogosH.CrearTipo)
			tipos.PATCH("/:id", catalogosH.ActualizarTipo)
			tipos.DELETE("/:id", catalogosH.DesactivarTipo)
		}
		marcas := api.Group("/catalogs/marcas", middleware.RequireRole(model.RolAdmin))
		{
			marcas.POST("", catalogosH.CrearMarca)
			marcas.PATCH("/:id", catalogosH.ActualizarMarca)
			marcas.DELETE("/:id", catalogosH.DesactivarMarca)
		}

		api.GET("/business-config", configH.ObtenerNegocio)
		api.POST("/business-config", middleware.RequireRole(model.RolAdmin), configH.GuardarNegocio)

		email := api.Group("/email-config", middleware.RequireRole(model.RolAdmin))
		{
			email.GET("", configH.ObtenerEmail)
			email.POST("", configH.GuardarEmail)
			// PUT dispara el correo de prueba contra la configuración activa
			email.PUT("", configH.EnviarPrueba)
		}

		api.GET("/stats", statsH.Obtener)
		api.GET("/hacienda", haciendaH.Consultar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
