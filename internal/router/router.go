package router

import (
	"time"

	"repairsuite/internal/config"
	"repairsuite/internal/handler"
	"repairsuite/internal/infra"
	"repairsuite/internal/middleware"
	"repairsuite/internal/repository"
	"repairsuite/internal/service"
	"repairsuite/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	gatewayCB *infra.CircuitBreaker,
	verificador service.VerificadorPagos,
	dispatcher *worker.Dispatcher,
) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	equipoRepo := repository.NewEquipoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	plantillaRepo := repository.NewPlantillaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	equipoSvc := service.NewEquipoService(equipoRepo, clienteRepo)
	ordenSvc := service.NewOrdenService(ordenRepo, clienteRepo, equipoRepo, usuarioRepo, rdb, dispatcher)
	pagoSvc := service.NewPagoService(ordenRepo, verificador, rdb, dispatcher)
	inventarioSvc := service.NewInventarioService(ordenRepo, productoRepo, movimientoStockRepo)
	productoSvc := service.NewProductoService(productoRepo, proveedorRepo)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	plantillaSvc := service.NewPlantillaService(plantillaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	equiposH := handler.NewEquiposHandler(equipoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	pagosH := handler.NewPagosHandler(pagoSvc, ordenRepo, clienteRepo, dispatcher, cfg.PDFStoragePath)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	plantillasH := handler.NewPlantillasHandler(plantillaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, gatewayCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: recepcion, tecnico, administrador — declared per-endpoint.
		// La matriz de permisos por transición vive en el motor de ciclo de
		// vida; acá solo se decide quién puede llegar a cada endpoint.
		todos := middleware.RequireRole("recepcion", "tecnico", "administrador")
		mostrador := middleware.RequireRole("recepcion", "administrador")
		taller := middleware.RequireRole("tecnico", "administrador")
		admin := middleware.RequireRole("administrador")

		// Órdenes de servicio
		v1.POST("/ordenes", mostrador, ordenesH.Crear)
		v1.GET("/ordenes", todos, ordenesH.Listar)
		v1.GET("/ordenes/folio/:folio", todos, ordenesH.ObtenerPorFolio)
		v1.GET("/ordenes/:id", todos, ordenesH.Obtener)
		v1.POST("/ordenes/:id/estado", todos, ordenesH.CambiarEstado)
		v1.POST("/ordenes/:id/diagnostico", taller, ordenesH.RegistrarDiagnostico)
		v1.POST("/ordenes/:id/aprobar", mostrador, ordenesH.AprobarCotizacion)
		v1.POST("/ordenes/:id/tecnico", mostrador, ordenesH.AsignarTecnico)
		v1.POST("/ordenes/:id/reparacion", taller, ordenesH.RegistrarReparacion)

		// Pagos y comprobantes
		v1.POST("/ordenes/:id/pagos", mostrador, pagosH.RegistrarPago)
		v1.POST("/ordenes/:id/pagos/mixto", mostrador, pagosH.RegistrarPagoMixto)
		v1.GET("/ordenes/:id/cuenta", todos, pagosH.EstadoCuenta)
		v1.GET("/ordenes/:id/comprobante", todos, pagosH.DescargarComprobante)
		v1.POST("/ordenes/:id/comprobante/enviar", mostrador, pagosH.EnviarComprobante)

		// Solicitudes de repuestos — el técnico pide, el administrador resuelve
		v1.POST("/ordenes/:id/solicitudes", taller, inventarioH.SolicitarRepuesto)
		v1.POST("/solicitudes/:id/aprobar", admin, inventarioH.AprobarSolicitud)
		v1.POST("/solicitudes/:id/rechazar", admin, inventarioH.RechazarSolicitud)

		// Directorio
		v1.POST("/clientes", mostrador, clientesH.Crear)
		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.Obtener)
		v1.PUT("/clientes/:id", mostrador, clientesH.Actualizar)
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)
		v1.GET("/clientes/:id/equipos", todos, equiposH.ListarPorCliente)
		v1.POST("/equipos", mostrador, equiposH.Registrar)
		v1.GET("/equipos/:id", todos, equiposH.Obtener)

		// Catálogo de repuestos
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		v1.PATCH("/productos/:id/stock", admin, inventarioH.AjustarStock)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		inv := v1.Group("/inventario", middleware.RequireRole("recepcion", "administrador"))
		{
			inv.GET("/alertas", productosH.Alertas)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
		}

		prov := v1.Group("/proveedores", admin)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		// Plantillas de notificación
		v1.GET("/plantillas", todos, plantillasH.Listar)
		v1.PUT("/plantillas", admin, plantillasH.Guardar)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
