package tickets_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/mocks"
	"github.com/ticketmint/ticket-indexer/internal/providers/stacks"
	"github.com/ticketmint/ticket-indexer/internal/tickets"
)

const testPrincipal = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"

type pipelineFixture struct {
	holdings *mocks.MockHoldingsClient
	resolver *mocks.MockMetadataResolver
	pipeline tickets.Pipeline
}

func setupPipeline(t *testing.T, now time.Time) *pipelineFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	holdings := mocks.NewMockHoldingsClient(ctrl)
	resolver := mocks.NewMockMetadataResolver(ctrl)

	config := tickets.Config{
		WorkerPoolSize:  4,
		HoldingsTimeout: time.Second,
	}

	return &pipelineFixture{
		holdings: holdings,
		resolver: resolver,
		pipeline: tickets.NewPipeline(config, holdings, resolver, tickets.NewSynthesizer(fixedClock(t, now))),
	}
}

func rawHolding(assetIdentifier string, tokenID uint64) stacks.RawHolding {
	return stacks.RawHolding{
		AssetIdentifier: assetIdentifier,
		Value: stacks.HoldingValue{
			Repr: fmt.Sprintf("u%d", tokenID),
		},
	}
}

func TestRun_TransportFailureYieldsEmpty(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setupPipeline(t, now)

	f.holdings.EXPECT().
		GetHoldings(gomock.Any(), testPrincipal).
		Return(nil, fmt.Errorf("indexer unreachable"))

	result := f.pipeline.Run(context.Background(), testPrincipal)

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestRun_NoHoldingsYieldsEmpty(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setupPipeline(t, now)

	f.holdings.EXPECT().
		GetHoldings(gomock.Any(), testPrincipal).
		Return([]stacks.RawHolding{}, nil)

	result := f.pipeline.Run(context.Background(), testPrincipal)

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestRun_AllHoldingsMalformedYieldsEmpty(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setupPipeline(t, now)

	f.holdings.EXPECT().
		GetHoldings(gomock.Any(), testPrincipal).
		Return([]stacks.RawHolding{
			{AssetIdentifier: "no-separator-here", Value: stacks.HoldingValue{Repr: "u1"}},
			{AssetIdentifier: "SP1.event::tickets", Value: stacks.HoldingValue{Repr: "not-a-number"}},
		}, nil)

	result := f.pipeline.Run(context.Background(), testPrincipal)

	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestRun_GroupFailureIsIsolated(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setupPipeline(t, now)

	f.holdings.EXPECT().
		GetHoldings(gomock.Any(), testPrincipal).
		Return([]stacks.RawHolding{
			rawHolding("SP1.good-event::tickets", 1),
			rawHolding("SP2.bad-event::tickets", 2),
		}, nil)

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP1", "good-event").
		Return(fullMetadata())
	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP2", "bad-event").
		DoAndReturn(func(context.Context, string, string) *domain.EventMetadata {
			panic("resolver blew up")
		})

	result := f.pipeline.Run(context.Background(), testPrincipal)

	require.Len(t, result, 1)
	assert.Equal(t, "SP1.good-event-1", result[0].ID)
}

func TestRun_EndToEnd(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setupPipeline(t, now)

	// Two tokens of one contract with a future event, one token of another
	// whose metadata resolution fails outright
	f.holdings.EXPECT().
		GetHoldings(gomock.Any(), testPrincipal).
		Return([]stacks.RawHolding{
			rawHolding("SP1.summer-fest::tickets", 5),
			rawHolding("SP1.summer-fest::tickets", 9),
			rawHolding("SP2.mystery-drop::passes", 3),
		}, nil)

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP1", "summer-fest").
		Return(fullMetadata())
	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP2", "mystery-drop").
		Return(&domain.EventMetadata{
			EventName:      "Mystery Drop",
			Image:          domain.PLACEHOLDER_IMAGE_URL,
			Description:    domain.DEFAULT_DESCRIPTION,
			Category:       domain.DEFAULT_CATEGORY,
			Price:          domain.DEFAULT_PRICE,
			PriceFormatted: domain.DEFAULT_PRICE,
		})

	result := f.pipeline.Run(context.Background(), testPrincipal)

	require.Len(t, result, 3)

	// Dated tickets sort before the undated one, ascending, ties by ID
	assert.Equal(t, "SP1.summer-fest-5", result[0].ID)
	assert.Equal(t, "SP1.summer-fest-9", result[1].ID)
	assert.Equal(t, "SP2.mystery-drop-3", result[2].ID)

	assert.Equal(t, domain.TicketStatusActive, result[0].Status)
	assert.Equal(t, domain.TicketStatusActive, result[2].Status)
	assert.Equal(t, "Mystery Drop", result[2].EventName)
	assert.Equal(t, "TBA", result[2].EventDate)
	assert.Equal(t, domain.PLACEHOLDER_IMAGE_URL, result[2].Image)
}

func TestRun_SortOrder(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := setupPipeline(t, now)

	f.holdings.EXPECT().
		GetHoldings(gomock.Any(), testPrincipal).
		Return([]stacks.RawHolding{
			rawHolding("SP1.late-show::tickets", 1),
			rawHolding("SP2.early-show::tickets", 1),
			rawHolding("SP3.undated-show::tickets", 1),
		}, nil)

	datedMeta := func(name, date string) *domain.EventMetadata {
		meta := fullMetadata()
		meta.EventName = name
		meta.EventDate = &date
		return meta
	}
	undatedMeta := fullMetadata()
	undatedMeta.EventName = "Undated Show"
	undatedMeta.EventDate = nil

	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP1", "late-show").
		Return(datedMeta("Late Show", "2025-12-01T20:00:00Z"))
	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP2", "early-show").
		Return(datedMeta("Early Show", "2025-03-01T20:00:00Z"))
	f.resolver.EXPECT().
		Resolve(gomock.Any(), "SP3", "undated-show").
		Return(undatedMeta)

	result := f.pipeline.Run(context.Background(), testPrincipal)

	require.Len(t, result, 3)
	assert.Equal(t, "Early Show", result[0].EventName)
	assert.Equal(t, "Late Show", result[1].EventName)
	assert.Equal(t, "Undated Show", result[2].EventName)
}
