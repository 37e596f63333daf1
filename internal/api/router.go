package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/heronet/sellnet/docs"
	"github.com/heronet/sellnet/internal/api/handler"
	"github.com/heronet/sellnet/internal/api/middleware"
	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

const bodyLimit = "25M"

// Deps holds everything the router needs to build its handlers.
type Deps struct {
	Accounts  ports.AccountService
	Products  ports.ProductService
	Suppliers ports.SupplierService
	Locations ports.LocationProvider
	Tokens    ports.TokenParser

	Mongo   *mongo.Database
	Redis   *redis.Client
	Storage handler.Pinger

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddleware("sellnet"))

	// --- Handlers ---
	accountHandler := handler.NewAccountHandler(deps.Accounts)
	utilityHandler := handler.NewUtilityHandler(deps.Locations)
	productHandler := handler.NewProductHandler(deps.Products)
	supplierHandler := handler.NewSupplierHandler(deps.Suppliers)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Storage)

	auth := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	sellers := middleware.RBAC(domain.RoleMember, domain.RoleAdmin)

	// --- Operational routes (no auth required) ---
	e.GET("/", healthHandler.Welcome)
	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Accounts ---
	account := api.Group("/account")
	account.POST("/register", accountHandler.Register)
	account.POST("/login", accountHandler.Login)
	account.POST("/refresh", accountHandler.Refresh, auth)

	api.POST("/admin/register", accountHandler.RegisterAdmin, auth, adminOnly)

	api.GET("/utilities/locations", utilityHandler.Locations)

	// --- Products ---
	products := api.Group("/products")
	products.GET("/all", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, auth, sellers)
	products.DELETE("/:id", productHandler.Delete, auth, sellers)

	// --- Suppliers (admin only) ---
	suppliers := api.Group("/suppliers", auth, adminOnly)
	suppliers.GET("", supplierHandler.Find)
	suppliers.GET("/all", supplierHandler.List)
	suppliers.DELETE("/:id", supplierHandler.Delete)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
