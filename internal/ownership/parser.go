package ownership

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ticketmint/ticket-indexer/internal/domain"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/providers/stacks"
)

// ASSET_SEPARATOR splits a compound asset identifier into its contract part
// and asset name part
const ASSET_SEPARATOR = "::"

// Parse decodes raw holdings entries into OwnershipRecords. A malformed
// entry is skipped with a warning; it never discards the rest of the batch.
// Output preserves the source order.
func Parse(ctx context.Context, holdings []stacks.RawHolding) []domain.OwnershipRecord {
	records := make([]domain.OwnershipRecord, 0, len(holdings))

	for _, holding := range holdings {
		record, err := parseHolding(holding)
		if err != nil {
			logger.WarnCtx(ctx, "skipping malformed holding entry",
				zap.String("asset_identifier", holding.AssetIdentifier),
				zap.Error(err),
			)
			continue
		}
		records = append(records, record)
	}

	return records
}

// parseHolding decodes one raw holding entry
func parseHolding(holding stacks.RawHolding) (domain.OwnershipRecord, error) {
	contractAddress, contractName, err := splitAssetIdentifier(holding.AssetIdentifier)
	if err != nil {
		return domain.OwnershipRecord{}, err
	}

	tokenID, err := parseTokenID(holding.Value.Repr)
	if err != nil {
		return domain.OwnershipRecord{}, err
	}

	return domain.OwnershipRecord{
		ContractAddress: contractAddress,
		ContractName:    contractName,
		TokenID:         tokenID,
		AssetIdentifier: holding.AssetIdentifier,
	}, nil
}

// splitAssetIdentifier decodes "<address>.<name>::<asset>" into its contract
// address and contract name
func splitAssetIdentifier(assetIdentifier string) (contractAddress, contractName string, err error) {
	parts := strings.SplitN(assetIdentifier, ASSET_SEPARATOR, 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", fmt.Errorf("missing %q separator", ASSET_SEPARATOR)
	}

	contractParts := strings.SplitN(parts[0], ".", 2)
	if len(contractParts) != 2 || contractParts[0] == "" || contractParts[1] == "" {
		return "", "", fmt.Errorf("malformed contract identifier %q", parts[0])
	}

	return contractParts[0], contractParts[1], nil
}

// parseTokenID extracts the numeric token ID from its typed repr (e.g. "u42")
func parseTokenID(repr string) (uint64, error) {
	repr = strings.TrimPrefix(strings.TrimSpace(repr), "u")
	if repr == "" {
		return 0, fmt.Errorf("empty token id repr")
	}

	tokenID, err := strconv.ParseUint(repr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric token id repr %q: %w", repr, err)
	}

	return tokenID, nil
}

// Group partitions ownership records by their owning contract. The partition
// is pure; iteration order over the result is up to the caller.
func Group(records []domain.OwnershipRecord) map[domain.ContractID][]domain.OwnershipRecord {
	groups := make(map[domain.ContractID][]domain.OwnershipRecord)
	for _, record := range records {
		id := record.ContractID()
		groups[id] = append(groups[id], record)
	}
	return groups
}
