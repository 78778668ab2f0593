package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	User    *handler.UserHandler
	Payment *handler.PaymentHandler
	Image   *handler.ImageHandler
	System  *handler.SystemHandler
}

// Options carries the cross-cutting pieces routes depend on
type Options struct {
	Auth       gin.HandlerFunc
	RateLimit  gin.HandlerFunc // nil disables generation rate limiting
	Metrics    http.Handler    // nil hides /metrics
	Production bool
	StaticDir  string
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, opts Options) {
	router.GET("/health", h.System.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	api := router.Group("/api")

	userRoutes := api.Group("/user")
	{
		userRoutes.POST("/register", h.User.Register)
		userRoutes.POST("/login", h.User.Login)
		userRoutes.GET("/plans", h.Payment.Plans)

		authed := userRoutes.Group("", opts.Auth)
		authed.GET("/credits", h.User.Credits)
		authed.POST("/credits", h.User.Credits)
		authed.POST("/pay-razor", h.Payment.CreateOrder)
		authed.POST("/payment", h.Payment.CreateOrder)
		authed.POST("/verify-razor", h.Payment.VerifyPayment)
		authed.POST("/payment-verify", h.Payment.VerifyPayment)
		authed.GET("/transactions", h.Payment.Transactions)
	}

	imageRoutes := api.Group("/image", opts.Auth)
	{
		generate := []gin.HandlerFunc{h.Image.GenerateImage}
		if opts.RateLimit != nil {
			generate = append([]gin.HandlerFunc{opts.RateLimit}, generate...)
		}
		imageRoutes.POST("/generate-image", generate...)
		imageRoutes.POST("/enhance-prompt", h.Image.EnhancePrompt)
	}

	if opts.Production {
		spa := serveSPA(opts.StaticDir)
		router.GET("/", spa)
		router.NoRoute(spa)
	} else {
		router.GET("/", h.System.Status)
		router.NoRoute(notFound)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, cors middleware.CORSOptions, metrics middleware.RequestRecorder) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cors))
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(domainerr.ErrNotFound, "Route not found"))
}

// serveSPA serves built client files and falls back to index.html for client-side routes
func serveSPA(staticDir string) gin.HandlerFunc {
	index := filepath.Join(staticDir, "index.html")

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			notFound(c)
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(index)
	}
}
