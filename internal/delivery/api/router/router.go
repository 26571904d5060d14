// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"cookbook/config"
	"cookbook/internal/delivery/api/middleware"
	"cookbook/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	RecipeHandler     *handler.RecipeHandler
	CategoryHandler   *handler.CategoryHandler
	ReviewHandler     *handler.ReviewHandler
	ContactHandler    *handler.ContactHandler
	ProductHandler    *handler.ProductHandler
	AuthMiddleware    *middleware.AuthMiddleware
	SessionMiddleware *middleware.SessionMiddleware
	MetricsHandler    http.Handler `name:"metrics"`
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	recipeHandler     *handler.RecipeHandler
	categoryHandler   *handler.CategoryHandler
	reviewHandler     *handler.ReviewHandler
	contactHandler    *handler.ContactHandler
	productHandler    *handler.ProductHandler
	authMiddleware    *middleware.AuthMiddleware
	sessionMiddleware *middleware.SessionMiddleware
	metricsHandler    http.Handler
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		recipeHandler:     params.RecipeHandler,
		categoryHandler:   params.CategoryHandler,
		reviewHandler:     params.ReviewHandler,
		contactHandler:    params.ContactHandler,
		productHandler:    params.ProductHandler,
		authMiddleware:    params.AuthMiddleware,
		sessionMiddleware: params.SessionMiddleware,
		metricsHandler:    params.MetricsHandler,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	requireAuth := r.authMiddleware.Authenticate

	e.GET("/", handler.Landing, r.sessionMiddleware.Load)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.metricsHandler))

	// Provider login and session routes
	authGroup := e.Group("/auth")
	if limit := r.config.HTTP.AuthRateLimit; limit > 0 {
		authGroup.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(limit))))
	}
	{
		authGroup.GET("/google", r.authHandler.GoogleLogin)
		authGroup.GET("/google/callback", r.authHandler.GoogleCallback)
		authGroup.GET("/failed", r.authHandler.Failed)
		authGroup.GET("/logout", r.authHandler.Logout)
		authGroup.GET("/profile", r.authHandler.Profile, requireAuth)
	}

	api := e.Group("/api")

	categories := api.Group("/categories")
	{
		categories.GET("", r.categoryHandler.List)
		categories.GET("/:id", r.categoryHandler.Get)
		categories.POST("", r.categoryHandler.Create, requireAuth)
		categories.PUT("/:id", r.categoryHandler.Update, requireAuth)
		categories.DELETE("/:id", r.categoryHandler.Delete, requireAuth)
	}

	recipes := api.Group("/recipes")
	{
		recipes.GET("", r.recipeHandler.List)
		recipes.GET("/:id", r.recipeHandler.Get)
		recipes.POST("", r.recipeHandler.Create, requireAuth)
		recipes.PUT("/:id", r.recipeHandler.Update, requireAuth)
		recipes.DELETE("/:id", r.recipeHandler.Delete, requireAuth)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/recipe/:recipeId", r.reviewHandler.ListByRecipe)
		reviews.POST("", r.reviewHandler.Create, requireAuth)
		reviews.PUT("/:id", r.reviewHandler.Update, requireAuth)
		reviews.DELETE("/:id", r.reviewHandler.Delete, requireAuth)
	}

	contacts := api.Group("/contacts")
	{
		contacts.GET("", r.contactHandler.List)
		contacts.GET("/:id", r.contactHandler.Get)
		contacts.POST("", r.contactHandler.Create, requireAuth)
		contacts.PUT("/:id", r.contactHandler.Update, requireAuth)
		contacts.DELETE("/:id", r.contactHandler.Delete, requireAuth)
	}

	products := api.Group("/products")
	{
		products.GET("", r.productHandler.List)
		products.GET("/:id", r.productHandler.Get)
		products.POST("", r.productHandler.Create, requireAuth)
		products.PUT("/:id", r.productHandler.Update, requireAuth)
		products.DELETE("/:id", r.productHandler.Delete, requireAuth)
	}
}
