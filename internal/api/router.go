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

	_ "github.com/ecomstore/commerce-api/docs"
	"github.com/ecomstore/commerce-api/internal/api/handler"
	"github.com/ecomstore/commerce-api/internal/api/middleware"
	"github.com/ecomstore/commerce-api/internal/core/domain"
	"github.com/ecomstore/commerce-api/internal/core/ports"
	"github.com/ecomstore/commerce-api/internal/core/service"
	mongodb "github.com/ecomstore/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ecomstore/commerce-api/internal/infrastructure/db/redis"
	"github.com/ecomstore/commerce-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The token filter and the access policy run globally: identity resolution is
// unconditional, enforcement is declarative and happens before any handler.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuthEventSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	addressRepo := mongodb.NewAddressRepository(db)
	denylist := redisdb.NewDenylist(rdb)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	authHandler := handler.NewAuthHandler(authService, denylist, audit)
	orderHandler := handler.NewOrderHandler(orderRepo)
	addressHandler := handler.NewAddressHandler(addressRepo)
	testHandler := handler.NewTestHandler()
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("commerce"))
	e.Use(middleware.TokenFilter(cfg.JWTSecret, denylist))
	e.Use(middleware.DefaultAccessPolicy().Enforce(audit))

	// --- Public surface ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "commerce API", "status": "ok"})
	})
	e.POST("/api/auth/signin", authHandler.SignIn)
	e.POST("/api/auth/signout", authHandler.SignOut)
	e.GET("/api/auth/user", authHandler.CurrentUser)

	// Role demonstration endpoints: public at the policy stage, the
	// user/seller/admin variants are role-gated per route.
	e.GET("/api/test/all", testHandler.All)
	e.GET("/api/test/user", testHandler.User, middleware.RequireRoles(domain.RoleUser, domain.RoleSeller, domain.RoleAdmin))
	e.GET("/api/test/seller", testHandler.Seller, middleware.RequireRoles(domain.RoleSeller, domain.RoleAdmin))
	e.GET("/api/test/admin", testHandler.Admin, middleware.RequireRoles(domain.RoleAdmin))

	// --- Protected resources (authenticated by the policy default) ---
	e.GET("/api/orders", orderHandler.ListOrders)
	e.GET("/api/orders/:id", orderHandler.GetOrder)
	e.GET("/api/addresses", addressHandler.ListAddresses)
	e.POST("/api/addresses", addressHandler.CreateAddress)

	// --- Ops endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger-ui/*", echoSwagger.WrapHandler)

	return e
}
