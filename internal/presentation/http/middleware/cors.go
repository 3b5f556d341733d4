package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jumapesa/billing-api/internal/config"
)

var (
	defaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	defaultAllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultAllowedHeaders = []string{
		"Accept",
		"Authorization",
		"Content-Type",
		"Origin",
		"X-Request-ID",
		IdempotencyKeyHeader,
	}
)

// CORSMiddleware creates a CORS middleware with the provided configuration.
// The Idempotency-Key header is always allowed so that browsers can reach
// the invoice mutation endpoints.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     withDefault(cfg.AllowedOrigins, defaultAllowedOrigins),
		AllowMethods:     withDefault(cfg.AllowedMethods, defaultAllowedMethods),
		AllowHeaders:     withDefault(cfg.AllowedHeaders, defaultAllowedHeaders),
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if !containsHeader(corsConfig.AllowHeaders, IdempotencyKeyHeader) {
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(corsConfig)
}

func withDefault(configured, fallback []string) []string {
	if len(configured) == 0 {
		return fallback
	}
	return configured
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
