package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/providers/stacks"
)

// Contracts store their event details under inconsistent field names. Each
// target field probes an ordered candidate list; the first present value
// wins. Kebab-case names come first since that is the dominant on-chain
// convention.
var (
	eventNameKeys   = []string{"event-name", "name", "eventName", "title"}
	eventDateKeys   = []string{"event-date", "date", "eventDate", "start-date", "startDate", "timestamp"}
	venueKeys       = []string{"venue-address", "venue", "location", "venueAddress", "place", "address"}
	imageKeys       = []string{"image", "image-uri", "imageUri", "image-url", "imageUrl", "cover-image"}
	descriptionKeys = []string{"description", "event-description", "eventDescription", "details"}
	categoryKeys    = []string{"category", "event-category", "eventCategory", "genre"}
	priceKeys       = []string{"ticket-price", "price", "ticketPrice", "cost"}
)

// wrapperKeys are single-level response/ok wrappers some contracts (and some
// read endpoints) put around the event details map
var wrapperKeys = []string{"ok", "value", "result", "data"}

// Resolver resolves one contract's event metadata.
//
// Resolve is a total function: no remote behavior and no response shape
// causes it to fail or to return a partially-populated record. A contract
// whose metadata cannot be fetched resolves to fully-defaulted metadata with
// the event name derived from the contract name.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	Resolve(ctx context.Context, contractAddress, contractName string) *domain.EventMetadata
}

type resolver struct {
	caller      stacks.ContractCaller
	callTimeout time.Duration
}

// NewResolver creates a metadata resolver backed by a read-only contract caller
func NewResolver(caller stacks.ContractCaller, callTimeout time.Duration) Resolver {
	return &resolver{
		caller:      caller,
		callTimeout: callTimeout,
	}
}

func (r *resolver) Resolve(ctx context.Context, contractAddress, contractName string) *domain.EventMetadata {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	result, err := r.caller.CallReadOnly(callCtx, contractAddress, contractName, stacks.EVENT_DETAILS_FUNCTION)
	if err != nil {
		logger.WarnCtx(ctx, "event details call failed, using fallback metadata",
			zap.String("contract_address", contractAddress),
			zap.String("contract_name", contractName),
			zap.Error(err),
		)
		return fallbackMetadata(contractName)
	}

	details, ok := unwrap(result).(map[string]interface{})
	if !ok {
		logger.WarnCtx(ctx, "event details are not a map, using fallback metadata",
			zap.String("contract_address", contractAddress),
			zap.String("contract_name", contractName),
		)
		return fallbackMetadata(contractName)
	}

	return normalize(details, contractName)
}

// normalize builds a fully-populated EventMetadata from a contract-defined
// details map
func normalize(details map[string]interface{}, contractName string) *domain.EventMetadata {
	meta := fallbackMetadata(contractName)

	if name, ok := probeString(details, eventNameKeys); ok && name != "" {
		meta.EventName = name
	}
	if date, ok := probeDate(details, eventDateKeys); ok {
		meta.EventDate = &date
	}
	if venue, ok := probeString(details, venueKeys); ok && venue != "" {
		meta.Venue = &venue
	}
	if image, ok := probeString(details, imageKeys); ok && image != "" {
		meta.Image = image
	}
	if description, ok := probeString(details, descriptionKeys); ok && description != "" {
		meta.Description = description
	}
	if category, ok := probeString(details, categoryKeys); ok && category != "" {
		meta.Category = category
	}
	if price, ok := probeString(details, priceKeys); ok && price != "" {
		meta.Price = price
	}

	meta.PriceFormatted = FormatPrice(meta.Price)
	return meta
}

// fallbackMetadata is the fully-defaulted record used when a contract's
// metadata is absent or unusable
func fallbackMetadata(contractName string) *domain.EventMetadata {
	return &domain.EventMetadata{
		EventName:      DeriveEventName(contractName),
		EventDate:      nil,
		Venue:          nil,
		Image:          domain.PLACEHOLDER_IMAGE_URL,
		Description:    domain.DEFAULT_DESCRIPTION,
		Category:       domain.DEFAULT_CATEGORY,
		Price:          domain.DEFAULT_PRICE,
		PriceFormatted: domain.DEFAULT_PRICE,
	}
}

// probeString returns the first present candidate key's value as a string
func probeString(details map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		raw, present := details[key]
		if !present {
			continue
		}
		if s, ok := asString(unwrap(raw)); ok {
			return s, true
		}
	}
	return "", false
}

// probeDate is probeString plus handling for numeric unix-seconds dates
func probeDate(details map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		raw, present := details[key]
		if !present {
			continue
		}

		value := unwrap(raw)
		if n, ok := value.(float64); ok && n >= 1e9 {
			return time.Unix(int64(n), 0).Format(time.RFC3339), true
		}
		if s, ok := asString(value); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// unwrap removes one level of tagged-container or response wrapping. Values
// may arrive as {"type": ..., "value": ...} or inside an ok/result envelope.
func unwrap(value interface{}) interface{} {
	m, ok := value.(map[string]interface{})
	if !ok {
		return value
	}

	if inner, present := m["value"]; present {
		if _, hasType := m["type"]; hasType || len(m) == 1 {
			return inner
		}
	}

	for _, key := range wrapperKeys {
		if inner, present := m[key]; present && len(m) == 1 {
			return inner
		}
	}

	return value
}

// asString coerces scalar values to their string form
func asString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// DeriveEventName derives a display event name from a contract name: split on
// separators, drop numeric tokens, title-case, join with spaces
func DeriveEventName(contractName string) string {
	tokens := strings.FieldsFunc(contractName, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})

	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" || isNumeric(token) {
			continue
		}
		words = append(words, titleCase(token))
	}

	if len(words) == 0 {
		return domain.DEFAULT_EVENT_NAME
	}
	return strings.Join(words, " ")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func titleCase(word string) string {
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

// FormatPrice formats an integer micro-unit price into a human token amount,
// trimming trailing zeros. Any parse failure formats as "0".
func FormatPrice(price string) string {
	micro, err := strconv.ParseUint(strings.TrimSpace(price), 10, 64)
	if err != nil {
		return domain.DEFAULT_PRICE
	}

	whole := micro / domain.MICRO_UNITS_PER_TOKEN
	frac := micro % domain.MICRO_UNITS_PER_TOKEN
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}

	formatted := strings.TrimRight(fmt.Sprintf("%d.%06d", whole, frac), "0")
	return strings.TrimRight(formatted, ".")
}

// DeriveEventTime formats the time-of-day component of an event date for
// display. Absent or unparseable dates display as "TBA".
func DeriveEventTime(eventDate *string) string {
	if eventDate == nil {
		return domain.DATE_TBA
	}

	t, err := domain.ParseEventDate(*eventDate)
	if err != nil {
		return domain.DATE_TBA
	}

	return t.Format("3:04 PM")
}
