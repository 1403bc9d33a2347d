package stacks

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
)

// EVENT_DETAILS_FUNCTION is the conventional read-only function exposing a
// contract's event details structure
const EVENT_DETAILS_FUNCTION = "get-event-details"

// readOnlyRequest is the body of a read-only function call
type readOnlyRequest struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

// readOnlyResponse is the decoded response of a read-only function call.
// Result carries the contract's structured return value as loose JSON; its
// shape is contract-defined and not guaranteed.
type readOnlyResponse struct {
	Okay   bool        `json:"okay"`
	Cause  string      `json:"cause,omitempty"`
	Result interface{} `json:"result"`
}

// ContractCaller defines the interface for read-only contract queries
//
//go:generate mockgen -source=contract_caller.go -destination=../../mocks/contract_caller.go -package=mocks -mock_names=ContractCaller=MockContractCaller
type ContractCaller interface {
	// CallReadOnly invokes a read-only function on a contract and returns
	// its structured result. The result shape is contract-defined.
	CallReadOnly(ctx context.Context, contractAddress, contractName, functionName string) (interface{}, error)
}

// contractCaller is the concrete implementation of ContractCaller
type contractCaller struct {
	baseURL    string
	sender     string
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// NewContractCaller creates a new read-only contract call client.
// sender is the principal reported as the caller of read-only functions; any
// syntactically valid principal works since no state changes.
func NewContractCaller(baseURL, sender string, httpClient adapter.HTTPClient, json adapter.JSON) ContractCaller {
	return &contractCaller{
		baseURL:    baseURL,
		sender:     sender,
		httpClient: httpClient,
		json:       json,
	}
}

// CallReadOnly invokes a read-only contract function with no arguments
func (c *contractCaller) CallReadOnly(ctx context.Context, contractAddress, contractName, functionName string) (interface{}, error) {
	endpoint := fmt.Sprintf("%s/v2/contracts/call-read/%s/%s/%s",
		c.baseURL,
		url.PathEscape(contractAddress),
		url.PathEscape(contractName),
		url.PathEscape(functionName),
	)

	requestBody, err := c.json.Marshal(readOnlyRequest{
		Sender:    c.sender,
		Arguments: []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal read-only request: %w", err)
	}

	responseBody, err := c.httpClient.Post(ctx, endpoint, "application/json", bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to call %s.%s::%s: %w", contractAddress, contractName, functionName, err)
	}

	var resp readOnlyResponse
	if err := c.json.Unmarshal(responseBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal read-only response: %w", err)
	}

	if !resp.Okay {
		return nil, fmt.Errorf("read-only call %s.%s::%s rejected: %s", contractAddress, contractName, functionName, resp.Cause)
	}

	return resp.Result, nil
}
