package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/tickets"
)

// statusClientClosedRequest is the conventional status for a caller that
// abandoned the request before a response was ready
const statusClientClosedRequest = 499

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetWalletTickets returns the normalized ticket list for a wallet
	// GET /api/v1/wallets/:address/tickets
	GetWalletTickets(c *gin.Context)

	// RefreshWalletTickets invalidates the wallet's cached result and
	// returns a freshly computed list
	// POST /api/v1/wallets/:address/tickets/refresh
	RefreshWalletTickets(c *gin.Context)

	// ClearCache drops every cached result
	// DELETE /api/v1/cache
	ClearCache(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// ticketsResponse is the payload for ticket list endpoints
type ticketsResponse struct {
	Tickets []domain.Ticket `json:"tickets"`
	Count   int             `json:"count"`
}

// handler implements the Handler interface
type handler struct {
	service tickets.Service
}

// NewHandler creates a new REST API handler
func NewHandler(service tickets.Service) Handler {
	return &handler{service: service}
}

func (h *handler) GetWalletTickets(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidPrincipal(address) {
		respondBadRequest(c, "Invalid wallet address", address)
		return
	}

	result, err := h.service.GetUserTickets(c.Request.Context(), address)
	if err != nil {
		// The pipeline never fails; the only error here is the caller's own
		// context ending while waiting
		respondContextError(c, err, address)
		return
	}

	c.JSON(http.StatusOK, ticketsResponse{Tickets: result, Count: len(result)})
}

func (h *handler) RefreshWalletTickets(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidPrincipal(address) {
		respondBadRequest(c, "Invalid wallet address", address)
		return
	}

	h.service.InvalidateUserTickets(address)

	result, err := h.service.GetUserTickets(c.Request.Context(), address)
	if err != nil {
		respondContextError(c, err, address)
		return
	}

	c.JSON(http.StatusOK, ticketsResponse{Tickets: result, Count: len(result)})
}

// respondContextError maps a wait-interrupted lookup to a response. A caller
// closing its own connection is not a server fault: it gets the nginx-style
// 499 with a debug log, not an error-level entry that would page on noise.
func respondContextError(c *gin.Context, err error, address string) {
	if errors.Is(err, context.Canceled) {
		logger.DebugCtx(c.Request.Context(), "client closed request while waiting for tickets",
			zap.String("address", address),
		)
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}

	respondInternalError(c, err, "Ticket lookup interrupted", zap.String("address", address))
}

func (h *handler) ClearCache(c *gin.Context) {
	h.service.InvalidateUserTickets()
	c.Status(http.StatusNoContent)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
