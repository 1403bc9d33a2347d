package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ContractID identifies a deployed ticket contract in the format
// "<contractAddress>.<contractName>" (e.g., "SP2J6ZY4...V3R.summer-fest-2025")
type ContractID string

// NewContractID builds a ContractID from its parts
func NewContractID(contractAddress, contractName string) ContractID {
	return ContractID(fmt.Sprintf("%s.%s", contractAddress, contractName))
}

// Parse splits a ContractID into contract address and contract name.
// Contract names may themselves contain dots, so only the first dot splits.
func (c ContractID) Parse() (contractAddress, contractName string) {
	parts := strings.SplitN(string(c), ".", 2)
	if len(parts) != 2 {
		return string(c), ""
	}
	return parts[0], parts[1]
}

// Valid checks that both parts of the ContractID are present
func (c ContractID) Valid() bool {
	address, name := c.Parse()
	return address != "" && name != ""
}

// principalRegexp matches the shape of a Stacks principal (address)
var principalRegexp = regexp.MustCompile(`^S[PTM0-9][0-9A-Z]{1,41}$`)

// IsValidPrincipal reports whether the address looks like a wallet principal
func IsValidPrincipal(address string) bool {
	return principalRegexp.MatchString(address)
}

// OwnershipRecord is one owned NFT as decoded from a raw holdings entry.
// Records are created fresh on every pipeline run and discarded after
// synthesis; they are never persisted.
type OwnershipRecord struct {
	ContractAddress string
	ContractName    string
	TokenID         uint64
	AssetIdentifier string // opaque source key, kept for diagnostics only
}

// ContractID returns the grouping key for this record
func (r *OwnershipRecord) ContractID() ContractID {
	return NewContractID(r.ContractAddress, r.ContractName)
}

// EventMetadata holds the normalized event fields for one contract, shared by
// every token owned in that contract.
//
// Invariant: a resolved EventMetadata is always fully populated. Nullable
// fields (EventDate, Venue) use nil to mean "not announced"; every other
// field carries a renderable fallback value.
type EventMetadata struct {
	EventName      string  `json:"event_name"`
	EventDate      *string `json:"event_date"` // ISO-ish timestamp, nil = TBA
	Venue          *string `json:"venue"`
	Image          string  `json:"image"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Price          string  `json:"price"` // integer micro-units
	PriceFormatted string  `json:"price_formatted"`
}

// TicketStatus is the lifecycle state of a ticket, derived from the event
// date against the wall clock at read time. It is never persisted.
type TicketStatus string

const (
	TicketStatusActive TicketStatus = "active"
	TicketStatusUsed   TicketStatus = "used"
)

// Ticket is the normalized, display-ready record exposed to consumers, one
// per (contract, tokenID) pair owned by the queried address.
//
// Invariant: every field is a defined, renderable value.
type Ticket struct {
	ID           string       `json:"id"`
	EventName    string       `json:"event_name"`
	EventDate    string       `json:"event_date"` // long display form or "TBA"
	EventTime    string       `json:"event_time"`
	Location     string       `json:"location"`
	Image        string       `json:"image"`
	Category     string       `json:"category"`
	Price        string       `json:"price"`
	TicketNumber string       `json:"ticket_number"`
	Status       TicketStatus `json:"status"`
	Quantity     int          `json:"quantity"`

	// EventDateRaw keeps the machine-oriented date for sorting; it is not
	// part of the rendered payload.
	EventDateRaw string `json:"-"`
}

// TicketID builds the stable ticket identity for a (contract, tokenID) pair
func TicketID(contractID ContractID, tokenID uint64) string {
	return fmt.Sprintf("%s-%d", contractID, tokenID)
}

// eventDateLayouts are the accepted shapes of on-chain event dates, probed in
// order. Contracts store dates inconsistently; RFC3339 is the common case.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseEventDate parses an ISO-ish event date string into local time
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty event date")
	}

	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized event date format: %q", value)
}
