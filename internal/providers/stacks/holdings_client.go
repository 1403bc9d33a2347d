package stacks

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
	"github.com/ticketmint/ticket-indexer/internal/logger"
)

// RawHolding is one NFT ownership entry as reported by the holdings index.
// AssetIdentifier is a compound key in the format
// "<contractAddress>.<contractName>::<assetName>"; Value wraps the token ID
// in its typed on-chain representation (e.g., repr "u42").
type RawHolding struct {
	AssetIdentifier string       `json:"asset_identifier"`
	Value           HoldingValue `json:"value"`
}

// HoldingValue is the typed value wrapper around a token ID
type HoldingValue struct {
	Hex  string `json:"hex"`
	Repr string `json:"repr"`
}

// holdingsResponse is one page of the holdings index response
type holdingsResponse struct {
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	Total   int          `json:"total"`
	Results []RawHolding `json:"results"`
}

// HoldingsClient defines the interface for querying the NFT holdings index
//
//go:generate mockgen -source=holdings_client.go -destination=../../mocks/holdings_client.go -package=mocks -mock_names=HoldingsClient=MockHoldingsClient
type HoldingsClient interface {
	// GetHoldings returns every NFT ownership entry for the given principal,
	// following pagination up to the configured page cap
	GetHoldings(ctx context.Context, principal string) ([]RawHolding, error)
}

// holdingsClient is the concrete implementation of HoldingsClient
type holdingsClient struct {
	baseURL    string
	pageSize   int
	maxPages   int
	httpClient adapter.HTTPClient
}

// NewHoldingsClient creates a new holdings index client
func NewHoldingsClient(baseURL string, pageSize, maxPages int, httpClient adapter.HTTPClient) HoldingsClient {
	return &holdingsClient{
		baseURL:    baseURL,
		pageSize:   pageSize,
		maxPages:   maxPages,
		httpClient: httpClient,
	}
}

// GetHoldings queries the holdings index for all NFTs owned by the principal.
// An empty result is the normal "owns nothing" case, not an error.
func (c *holdingsClient) GetHoldings(ctx context.Context, principal string) ([]RawHolding, error) {
	var holdings []RawHolding

	offset := 0
	for page := 0; page < c.maxPages; page++ {
		resp, err := c.getPage(ctx, principal, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch holdings page at offset %d: %w", offset, err)
		}

		holdings = append(holdings, resp.Results...)
		offset += len(resp.Results)

		if len(resp.Results) == 0 || offset >= resp.Total {
			return holdings, nil
		}
	}

	// The address owns more than pageSize*maxPages NFTs. Return what we have;
	// the caller still gets a usable (if truncated) list.
	logger.WarnCtx(ctx, "holdings page cap reached, result truncated",
		zap.String("principal", principal),
		zap.Int("fetched", len(holdings)),
		zap.Int("max_pages", c.maxPages),
	)
	return holdings, nil
}

// getPage fetches a single page of holdings
func (c *holdingsClient) getPage(ctx context.Context, principal string, offset int) (*holdingsResponse, error) {
	endpoint := fmt.Sprintf("%s/extended/v1/tokens/nft/holdings?principal=%s&limit=%d&offset=%d",
		c.baseURL, url.QueryEscape(principal), c.pageSize, offset)

	var resp holdingsResponse
	if err := c.httpClient.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
