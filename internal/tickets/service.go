package tickets

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ticketmint/ticket-indexer/internal/cache"
	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/logger"
)

// Service is the entry point exposed to the UI layer: cached-or-fresh
// normalized ticket lists per wallet address.
//
//go:generate mockgen -source=service.go -destination=../mocks/ticket_service.go -package=mocks -mock_names=Service=MockTicketService
type Service interface {
	// GetUserTickets returns the user's normalized tickets, from cache when
	// fresh. The only possible error is the caller's own context ending
	// while waiting; the pipeline itself never fails.
	GetUserTickets(ctx context.Context, address string) ([]domain.Ticket, error)

	// InvalidateUserTickets forces the next call for the given addresses to
	// bypass the cache. With no arguments it clears every entry.
	InvalidateUserTickets(addresses ...string)
}

type service struct {
	pipeline   Pipeline
	cache      *cache.TicketCache
	flights    singleflight.Group
	runTimeout time.Duration
}

// NewService creates the ticket service
func NewService(pipeline Pipeline, cache *cache.TicketCache, runTimeout time.Duration) Service {
	return &service{
		pipeline:   pipeline,
		cache:      cache,
		runTimeout: runTimeout,
	}
}

func (s *service) GetUserTickets(ctx context.Context, address string) ([]domain.Ticket, error) {
	if tickets, ok := s.cache.Get(address); ok {
		logger.DebugCtx(ctx, "ticket cache hit", zap.String("address", address))
		return tickets, nil
	}

	// Coalesce concurrent misses for the same address into one pipeline run.
	// The flight runs on its own timeout context so one caller abandoning
	// does not cancel the run for the other waiters.
	ch := s.flights.DoChan(address, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()

		tickets := s.pipeline.Run(runCtx, address)
		s.cache.Set(address, tickets)
		return tickets, nil
	})

	select {
	case res := <-ch:
		return res.Val.([]domain.Ticket), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *service) InvalidateUserTickets(addresses ...string) {
	if len(addresses) == 0 {
		s.cache.InvalidateAll()
		return
	}

	for _, address := range addresses {
		s.cache.Invalidate(address)
		// Drop any in-flight run too, so a post-purchase refresh cannot be
		// served a result computed before the purchase landed
		s.flights.Forget(address)
	}
}
