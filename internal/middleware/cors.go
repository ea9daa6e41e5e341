package middleware

import (
	"github.com/asv-bible-study-api/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CORSMiddleware returns a configured CORS middleware
func CORSMiddleware() echo.MiddlewareFunc {
	return CORSWithOrigins(config.GetConfig().CORSOrigins)
}

// CORSWithOrigins returns the CORS middleware for the given origins
func CORSWithOrigins(origins []string) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	})
}
