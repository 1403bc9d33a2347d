package tickets_test

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/mocks"
	"github.com/ticketmint/ticket-indexer/internal/tickets"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func fixedClock(t *testing.T, now time.Time) *mocks.MockClock {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()
	return clock
}

func strPtr(s string) *string {
	return &s
}

func fullMetadata() *domain.EventMetadata {
	return &domain.EventMetadata{
		EventName:      "Summer Fest",
		EventDate:      strPtr("2025-06-15T20:00:00Z"),
		Venue:          strPtr("Central Park"),
		Image:          "https://cdn.example.com/fest.png",
		Description:    "Open-air festival",
		Category:       "Music",
		Price:          "2500000",
		PriceFormatted: "2.5",
	}
}

func TestSynthesize_Fields(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := tickets.NewSynthesizer(fixedClock(t, now))

	contractID := domain.NewContractID("SP123", "summer-fest")
	records := []domain.OwnershipRecord{
		{ContractAddress: "SP123", ContractName: "summer-fest", TokenID: 7},
		{ContractAddress: "SP123", ContractName: "summer-fest", TokenID: 12345},
	}

	result := synthesizer.Synthesize(contractID, records, fullMetadata())

	require.Len(t, result, 2)

	first := result[0]
	assert.Equal(t, "SP123.summer-fest-7", first.ID)
	assert.Equal(t, "Summer Fest", first.EventName)
	assert.Equal(t, "June 15, 2025", first.EventDate)
	assert.Equal(t, "Central Park", first.Location)
	assert.Equal(t, "https://cdn.example.com/fest.png", first.Image)
	assert.Equal(t, "Music", first.Category)
	assert.Equal(t, "2.5", first.Price)
	assert.Equal(t, "#TKT-000007", first.TicketNumber)
	assert.Equal(t, domain.TicketStatusActive, first.Status)
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, "2025-06-15T20:00:00Z", first.EventDateRaw)

	// Token IDs wider than the pad width keep all their digits
	assert.Equal(t, "#TKT-012345", result[1].TicketNumber)
}

func TestSynthesize_SharedMetadataSnapshot(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := tickets.NewSynthesizer(fixedClock(t, now))

	contractID := domain.NewContractID("SP123", "summer-fest")
	records := []domain.OwnershipRecord{{TokenID: 1}, {TokenID: 2}, {TokenID: 3}}

	result := synthesizer.Synthesize(contractID, records, fullMetadata())

	require.Len(t, result, 3)
	for _, ticket := range result[1:] {
		assert.Equal(t, result[0].EventName, ticket.EventName)
		assert.Equal(t, result[0].Image, ticket.Image)
		assert.Equal(t, result[0].Status, ticket.Status)
	}
}

func TestSynthesize_StatusBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     *string
		expected domain.TicketStatus
	}{
		{
			name:     "exactly now",
			date:     strPtr("2025-06-15T20:00:00Z"),
			expected: domain.TicketStatusUsed,
		},
		{
			name:     "one millisecond before now",
			date:     strPtr("2025-06-15T19:59:59.999Z"),
			expected: domain.TicketStatusUsed,
		},
		{
			name:     "one millisecond after now",
			date:     strPtr("2025-06-15T20:00:00.001Z"),
			expected: domain.TicketStatusActive,
		},
		{
			name:     "absent date",
			date:     nil,
			expected: domain.TicketStatusActive,
		},
		{
			name:     "unparseable date fails open",
			date:     strPtr("sometime next summer"),
			expected: domain.TicketStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synthesizer := tickets.NewSynthesizer(fixedClock(t, now))

			meta := fullMetadata()
			meta.EventDate = tt.date

			result := synthesizer.Synthesize(domain.NewContractID("SP1", "e"), []domain.OwnershipRecord{{TokenID: 1}}, meta)

			require.Len(t, result, 1)
			assert.Equal(t, tt.expected, result[0].Status)
		})
	}
}

func TestSynthesize_FallbacksAreRenderable(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := tickets.NewSynthesizer(fixedClock(t, now))

	meta := fullMetadata()
	meta.EventDate = nil
	meta.Venue = nil

	result := synthesizer.Synthesize(domain.NewContractID("SP1", "e"), []domain.OwnershipRecord{{TokenID: 9}}, meta)

	require.Len(t, result, 1)
	assert.Equal(t, domain.DATE_TBA, result[0].EventDate)
	assert.Equal(t, domain.DATE_TBA, result[0].EventTime)
	assert.Equal(t, domain.DEFAULT_LOCATION, result[0].Location)
	assert.Empty(t, result[0].EventDateRaw)
}

func TestSynthesize_IdentityStable(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	synthesizer := tickets.NewSynthesizer(fixedClock(t, now))

	contractID := domain.NewContractID("SP123", "summer-fest")
	records := []domain.OwnershipRecord{{TokenID: 42}}

	first := synthesizer.Synthesize(contractID, records, fullMetadata())
	second := synthesizer.Synthesize(contractID, records, fullMetadata())

	assert.Equal(t, first[0].ID, second[0].ID)
}
