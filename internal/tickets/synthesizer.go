package tickets

import (
	"fmt"
	"time"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/metadata"
)

// Synthesizer combines grouped ownership records with resolved metadata into
// display-ready tickets
type Synthesizer struct {
	clock adapter.Clock
}

// NewSynthesizer creates a ticket synthesizer
func NewSynthesizer(clock adapter.Clock) *Synthesizer {
	return &Synthesizer{clock: clock}
}

// Synthesize builds one ticket per ownership record, all sharing the same
// metadata snapshot. Every field of every returned ticket is a defined,
// renderable value.
func (s *Synthesizer) Synthesize(contractID domain.ContractID, records []domain.OwnershipRecord, meta *domain.EventMetadata) []domain.Ticket {
	now := s.clock.Now()

	displayDate := formatDisplayDate(meta.EventDate)
	eventTime := metadata.DeriveEventTime(meta.EventDate)
	location := domain.DEFAULT_LOCATION
	if meta.Venue != nil && *meta.Venue != "" {
		location = *meta.Venue
	}

	rawDate := ""
	if meta.EventDate != nil {
		rawDate = *meta.EventDate
	}

	status := deriveStatus(meta.EventDate, now)

	result := make([]domain.Ticket, 0, len(records))
	for _, record := range records {
		result = append(result, domain.Ticket{
			ID:           domain.TicketID(contractID, record.TokenID),
			EventName:    meta.EventName,
			EventDate:    displayDate,
			EventTime:    eventTime,
			Location:     location,
			Image:        meta.Image,
			Category:     meta.Category,
			Price:        meta.PriceFormatted,
			TicketNumber: fmt.Sprintf("#TKT-%06d", record.TokenID),
			Status:       status,
			Quantity:     1,
			EventDateRaw: rawDate,
		})
	}

	return result
}

// deriveStatus computes the ticket lifecycle state from the event date
// against the wall clock. The state is recomputed on every run, never
// stored. Absent and unparseable dates fail open to active: a bad date must
// not hide a valid ticket.
func deriveStatus(eventDate *string, now time.Time) domain.TicketStatus {
	if eventDate == nil {
		return domain.TicketStatusActive
	}

	t, err := domain.ParseEventDate(*eventDate)
	if err != nil {
		return domain.TicketStatusActive
	}

	if t.After(now) {
		return domain.TicketStatusActive
	}
	return domain.TicketStatusUsed
}

// formatDisplayDate renders the event date in long human form, or "TBA"
func formatDisplayDate(eventDate *string) string {
	if eventDate == nil {
		return domain.DATE_TBA
	}

	t, err := domain.ParseEventDate(*eventDate)
	if err != nil {
		return domain.DATE_TBA
	}

	return t.Format("January 2, 2006")
}
