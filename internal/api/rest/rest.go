package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/ticketmint/ticket-indexer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ticket discovery (public read access)
		v1.GET("/wallets/:address/tickets", handler.GetWalletTickets)

		// Cache invalidation (requires authentication)
		v1.POST("/wallets/:address/tickets/refresh", middleware.Auth(authCfg), handler.RefreshWalletTickets)
		v1.DELETE("/cache", middleware.Auth(authCfg), handler.ClearCache)
	}
}
