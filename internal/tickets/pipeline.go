package tickets

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/metadata"
	"github.com/ticketmint/ticket-indexer/internal/ownership"
	"github.com/ticketmint/ticket-indexer/internal/providers/stacks"
)

// Config holds pipeline tuning knobs
type Config struct {
	WorkerPoolSize  int           // concurrent per-contract metadata resolutions
	HoldingsTimeout time.Duration // bound on the holdings index query
}

// Pipeline runs the full fetch -> parse -> group -> resolve -> synthesize ->
// sort sequence for one address.
//
// Run never returns an error and never lets a panic escape; total failure
// yields an empty slice. Callers cannot distinguish "owns nothing" from
// "indexer unreachable" here, which is a deliberate availability-over-
// precision tradeoff.
//
//go:generate mockgen -source=pipeline.go -destination=../mocks/pipeline.go -package=mocks -mock_names=Pipeline=MockPipeline
type Pipeline interface {
	Run(ctx context.Context, address string) []domain.Ticket
}

type pipeline struct {
	config      Config
	holdings    stacks.HoldingsClient
	resolver    metadata.Resolver
	synthesizer *Synthesizer
}

// NewPipeline creates a discovery pipeline
func NewPipeline(config Config, holdings stacks.HoldingsClient, resolver metadata.Resolver, synthesizer *Synthesizer) Pipeline {
	return &pipeline{
		config:      config,
		holdings:    holdings,
		resolver:    resolver,
		synthesizer: synthesizer,
	}
}

func (p *pipeline) Run(ctx context.Context, address string) (result []domain.Ticket) {
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("ticket pipeline panicked: %v", r), zap.String("address", address))
			result = []domain.Ticket{}
		}
	}()

	holdings := p.fetchHoldings(ctx, address)
	if len(holdings) == 0 {
		return []domain.Ticket{}
	}

	records := ownership.Parse(ctx, holdings)
	if len(records) == 0 {
		return []domain.Ticket{}
	}

	groups := ownership.Group(records)
	tickets := p.resolveGroups(ctx, groups)

	sortTickets(tickets)
	return tickets
}

// fetchHoldings queries the holdings index, absorbing transport failure into
// the empty result
func (p *pipeline) fetchHoldings(ctx context.Context, address string) []stacks.RawHolding {
	fetchCtx, cancel := context.WithTimeout(ctx, p.config.HoldingsTimeout)
	defer cancel()

	holdings, err := p.holdings.GetHoldings(fetchCtx, address)
	if err != nil {
		logger.WarnCtx(ctx, "holdings query failed, treating as no holdings",
			zap.String("address", address),
			zap.Error(err),
		)
		return nil
	}

	return holdings
}

// resolveGroups resolves metadata and synthesizes tickets per contract group,
// fanning out across contracts with a bounded worker pool. Groups are
// independent: one contract's failure only drops that contract's tokens.
func (p *pipeline) resolveGroups(ctx context.Context, groups map[domain.ContractID][]domain.OwnershipRecord) []domain.Ticket {
	pool := pond.NewPool(p.config.WorkerPoolSize, pond.WithContext(ctx))

	var mu sync.Mutex
	var tickets []domain.Ticket

	for contractID, records := range groups {
		contractID, records := contractID, records
		pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorCtx(ctx, fmt.Errorf("contract group resolution panicked: %v", r),
						zap.String("contract_id", string(contractID)),
					)
				}
			}()

			contractAddress, contractName := contractID.Parse()
			meta := p.resolver.Resolve(ctx, contractAddress, contractName)
			synthesized := p.synthesizer.Synthesize(contractID, records, meta)

			mu.Lock()
			tickets = append(tickets, synthesized...)
			mu.Unlock()
		})
	}

	pool.StopAndWait()

	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets
}

// sortTickets orders tickets ascending by parsed event date. Undated and
// unparseable dates sort after all dated tickets; ties break by ticket ID so
// the output order is fully deterministic.
func sortTickets(tickets []domain.Ticket) {
	type sortKey struct {
		dated bool
		t     time.Time
	}

	keys := make(map[string]sortKey, len(tickets))
	for _, ticket := range tickets {
		key := sortKey{}
		if ticket.EventDateRaw != "" {
			if t, err := domain.ParseEventDate(ticket.EventDateRaw); err == nil {
				key = sortKey{dated: true, t: t}
			}
		}
		keys[ticket.ID] = key
	}

	sort.Slice(tickets, func(i, j int) bool {
		a, b := keys[tickets[i].ID], keys[tickets[j].ID]
		switch {
		case a.dated != b.dated:
			return a.dated
		case a.dated && !a.t.Equal(b.t):
			return a.t.Before(b.t)
		default:
			return tickets[i].ID < tickets[j].ID
		}
	})
}
