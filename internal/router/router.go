package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lojinha-dev/lojinha/internal/auth"
	"github.com/lojinha-dev/lojinha/internal/handlers"
	"github.com/lojinha-dev/lojinha/internal/logger"
	"github.com/lojinha-dev/lojinha/internal/metrics"
	"github.com/lojinha-dev/lojinha/internal/middleware"
	"github.com/lojinha-dev/lojinha/internal/models"
	"github.com/lojinha-dev/lojinha/internal/services"
	"github.com/lojinha-dev/lojinha/internal/types"
	"github.com/lojinha-dev/lojinha/internal/validation"
	log "github.com/sirupsen/logrus"
)

type Dependencies struct {
	Tokens   *auth.TokenManager
	Auth     *services.AuthService
	Clients  *services.ClientService
	Products *services.ProductService
	Orders   *services.OrderService
	Reports  *services.ReportService
	Feed     *handlers.OrderFeed
	Ping     func(ctx context.Context) error

	// Scheduler is nil when scheduled export is off.
	Scheduler handlers.SchedulerStatus

	AllowedOrigins []string
	AuthRateLimit  float64
	AuthRateBurst  int
}

func NewRouter(deps Dependencies) *gin.Engine {
	validation.Register()

	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(), metrics.Middleware(), middleware.ErrorHandler())

	// cors refuses a config that allows no origin at all
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		log.Warn("No allowed origins configured, CORS middleware disabled")
	}

	authHandler := handlers.NewAuthHandler(deps.Auth)
	clientHandler := handlers.NewClientHandler(deps.Clients)
	productHandler := handlers.NewProductHandler(deps.Products)
	orderHandler := handlers.NewOrderHandler(deps.Orders)
	reportHandler := handlers.NewReportHandler(deps.Reports)
	healthHandler := handlers.NewHealthHandler(deps.Ping, deps.Feed, deps.Scheduler)

	authenticate := middleware.Authenticate(deps.Tokens)
	admin := middleware.Authorize(models.RoleAdmin)
	anyone := middleware.Authorize(models.RoleAdmin, models.RoleCliente)
	byID := validation.URI[types.IDParam]()

	r.GET("/metrics", metrics.Handler())

	authRoutes := r.Group("/auth", middleware.NewRateLimiter(deps.AuthRateLimit, deps.AuthRateBurst).Middleware())
	{
		authRoutes.POST("/register", validation.JSON[types.RegisterRequest](), authHandler.Register)
		authRoutes.POST("/login", validation.JSON[types.LoginRequest](), authHandler.Login)
	}

	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		clientes := api.Group("/clientes")
		{
			clientes.GET("", validation.Query[types.ClientQuery](), authenticate, anyone, clientHandler.List)
			clientes.POST("", validation.JSON[types.CreateClientRequest](), authenticate, admin, clientHandler.Create)
			clientes.GET("/:id", byID, authenticate, anyone, clientHandler.Get)
			clientes.PUT("/:id", byID, validation.JSON[types.UpdateClientRequest](), authenticate, admin, clientHandler.Update)
			clientes.DELETE("/:id", byID, authenticate, admin, clientHandler.Delete)
		}

		produtos := api.Group("/produtos")
		{
			produtos.GET("", validation.Query[types.ProductQuery](), productHandler.List)
			produtos.POST("", validation.JSON[types.CreateProductRequest](), authenticate, admin, productHandler.Create)
			produtos.GET("/:id", byID, productHandler.Get)
			produtos.PUT("/:id", byID, validation.JSON[types.UpdateProductRequest](), authenticate, admin, productHandler.Update)
			produtos.DELETE("/:id", byID, authenticate, admin, productHandler.Delete)
		}

		pedidos := api.Group("/pedidos")
		{
			pedidos.GET("/ws", authenticate, anyone, deps.Feed.Serve)
			pedidos.GET("", authenticate, anyone, orderHandler.List)
			pedidos.POST("", validation.JSON[types.CreateOrderRequest](), authenticate, anyone, orderHandler.Create)
			pedidos.GET("/:id", byID, authenticate, anyone, orderHandler.Get)
			pedidos.PUT("/:id", byID, validation.JSON[types.UpdateOrderRequest](), authenticate, anyone, orderHandler.Update)
			pedidos.DELETE("/:id", byID, authenticate, anyone, orderHandler.Delete)
		}

		relatorios := api.Group("/relatorios")
		{
			relatorios.GET("", validation.Query[types.ReportQuery](), authenticate, admin, reportHandler.Generate)
			relatorios.GET("/historico", authenticate, admin, reportHandler.History)
		}
	}

	return r
}
