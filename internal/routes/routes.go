package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"storefront-api/internal/config"
	"storefront-api/internal/docs"
	"storefront-api/internal/handlers"
	"storefront-api/internal/logger"
	"storefront-api/internal/middleware"
)

// SetupRouter wires every endpoint of the API onto a gin engine. Read access
// to products and categories is public; writes require an authenticated
// admin. The users and upload groups require authentication throughout.
func SetupRouter(h *handlers.Handlers, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(log, cfg.Env))
	r.Use(logger.Middleware(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.HTTP.AllowedOrigin))

	r.NoRoute(middleware.NoRoute())

	r.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- API Docs ---
	// Swagger UI plus the raw document for frontends; any origin may read it.
	r.GET("/api-docs.json", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/api-docs.json")))

	api := r.Group(cfg.HTTP.APIPrefix)

	authRequired := middleware.Auth(h.Auth)
	adminOnly := middleware.AdminOnly()

	// --- Auth Routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	// --- Product Routes ---
	products := api.Group("/products")
	{
		products.GET("", h.GetAllProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", authRequired, adminOnly, h.CreateProduct)
		products.PUT("/:id", authRequired, adminOnly, h.UpdateProduct)
		products.DELETE("/:id", authRequired, adminOnly, h.DeleteProduct)
	}

	// --- Category Routes ---
	categories := api.Group("/categories")
	{
		categories.GET("", h.GetAllCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", authRequired, adminOnly, h.CreateCategory)
		categories.PUT("/:id", authRequired, adminOnly, h.UpdateCategory)
		categories.DELETE("/:id", authRequired, adminOnly, h.DeleteCategory)
	}

	// --- User Routes ---
	users := api.Group("/users", authRequired)
	{
		users.GET("", h.GetAllUsers)
		users.GET("/:id", h.GetUser)
		users.POST("", adminOnly, h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", adminOnly, h.DeleteUser)
	}

	// --- Upload Routes ---
	upload := api.Group("/upload", authRequired)
	{
		upload.POST("/single", h.UploadSingle)
		upload.POST("/pdf", h.UploadPDF)
		upload.POST("/csv", h.UploadCSV)
	}

	return r
}
