package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	System  *handler.SystemHandler
	Catalog *handler.CatalogHandler
	Product *handler.ProductHandler
	Basket  *handler.BasketHandler
	Order   *handler.OrderHandler
	Partner *handler.PartnerHandler
	User    *handler.UserHandler
}

// Router wires the middleware stack and the route table onto a gin engine.
type Router struct {
	cfg      *config.Config
	jwt      *auth.JWTService
	handlers Handlers
	log      *zap.Logger
}

// New creates a new Router
func New(cfg *config.Config, jwt *auth.JWTService, handlers Handlers, log *zap.Logger) *Router {
	return &Router{
		cfg:      cfg,
		jwt:      jwt,
		handlers: handlers,
		log:      log,
	}
}

// Setup builds the engine with the full middleware stack and route table.
func (r *Router) Setup() *gin.Engine {
	if r.cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(r.cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(r.cfg.HTTP.TrustedProxies); err != nil {
			r.log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(r.log))
	engine.Use(logger.GinMiddleware(r.log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     r.cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     r.cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     r.cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Liveness stays outside API versioning so probes survive route changes.
	engine.GET("/health", r.handlers.System.Health)

	api := engine.Group("/api/v1")
	r.registerPublic(api)
	r.registerCustomer(api)
	r.registerPartner(api)

	return engine
}

// registerPublic mounts the routes that need no token.
func (r *Router) registerPublic(api *gin.RouterGroup) {
	api.GET("/product", r.handlers.Product.List)
	api.GET("/product/:id", r.handlers.Product.Get)
	api.GET("/categories", r.handlers.Catalog.ListCategories)
	api.GET("/shops", r.handlers.Catalog.ListShops)

	user := api.Group("/user")
	user.POST("/register", r.handlers.User.Register)
	user.POST("/register/verification", r.handlers.User.Verify)
	user.POST("/login", r.handlers.User.Login)
}

// registerCustomer mounts the routes available to any authenticated account.
func (r *Router) registerCustomer(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(r.jwt, r.log))

	authed.GET("/basket", r.handlers.Basket.Get)
	authed.POST("/basket", r.handlers.Basket.Add)
	authed.PUT("/basket", r.handlers.Basket.Update)
	authed.DELETE("/basket", r.handlers.Basket.Delete)

	authed.POST("/order", r.handlers.Order.Place)
	authed.GET("/order", r.handlers.Order.List)
	authed.GET("/order/:id", r.handlers.Order.Get)
	authed.DELETE("/order/:id", r.handlers.Order.Cancel)

	authed.GET("/user/details", r.handlers.User.GetDetails)
	authed.POST("/user/details", r.handlers.User.UpdateDetails)
	authed.GET("/user/contact", r.handlers.User.ListContacts)
	authed.POST("/user/contact", r.handlers.User.CreateContact)
	authed.PUT("/user/contact/:id", r.handlers.User.UpdateContact)
	authed.DELETE("/user/contact/:id", r.handlers.User.DeleteContact)
}

// registerPartner mounts the shop-owner routes, which additionally require
// the shop role.
func (r *Router) registerPartner(api *gin.RouterGroup) {
	shop := api.Group("")
	shop.Use(middleware.JWTAuth(r.jwt, r.log), middleware.RequireRole("shop"))

	shop.POST("/product/update", r.handlers.Product.Update)

	partner := shop.Group("/partner")
	partner.GET("/state", r.handlers.Partner.GetState)
	partner.POST("/state", r.handlers.Partner.SetState)
	partner.GET("/orders", r.handlers.Partner.ListOrders)
	partner.POST("/orders/:id/status", r.handlers.Partner.AdvanceOrder)
}
