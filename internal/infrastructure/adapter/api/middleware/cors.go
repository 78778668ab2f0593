package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSOptions selects which browser origins may call the API
type CORSOptions struct {
	AllowedOrigins []string
	FrontendURL    string
	AllowAll       bool // production serves the SPA itself, so any origin is accepted
}

// CORS answers preflights and sets the CORS headers for allowed origins
func CORS(opts CORSOptions) gin.HandlerFunc {
	origins := make([]string, 0, len(opts.AllowedOrigins)+1)
	for _, o := range append(slices.Clone(opts.AllowedOrigins), opts.FrontendURL) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" && !slices.Contains(origins, o) {
			origins = append(origins, o)
		}
	}

	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if opts.AllowAll {
		// credentials rule out "*", so the request origin is echoed back
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}
