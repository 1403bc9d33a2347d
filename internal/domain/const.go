package domain

const (
	// Fallback values used when a contract's event metadata is missing a field
	PLACEHOLDER_IMAGE_URL = "https://placehold.co/600x400?text=Event+Ticket"
	DEFAULT_EVENT_NAME    = "Event"
	DEFAULT_DESCRIPTION   = "No description available"
	DEFAULT_CATEGORY      = "General"
	DEFAULT_PRICE         = "0"
	DEFAULT_LOCATION      = "TBA"

	// Display literal for dates that are absent or unparseable
	DATE_TBA = "TBA"

	// Prices are stored on-chain in micro-units (1 STX = 1,000,000 uSTX)
	MICRO_UNITS_PER_TOKEN = 1_000_000
)
