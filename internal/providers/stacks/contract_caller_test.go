package stacks_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
	"github.com/ticketmint/ticket-indexer/internal/mocks"
	"github.com/ticketmint/ticket-indexer/internal/providers/stacks"
)

const testSender = "SP000000000000000000002Q6VF78"

func TestCallReadOnly_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), gomock.Any(), "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, endpoint, _ string, body io.Reader) ([]byte, error) {
			assert.Equal(t,
				testBaseURL+"/v2/contracts/call-read/SP1/summer-fest/get-event-details",
				endpoint,
			)

			sent, err := io.ReadAll(body)
			require.NoError(t, err)

			var request map[string]interface{}
			require.NoError(t, json.Unmarshal(sent, &request))
			assert.Equal(t, testSender, request["sender"])
			assert.Empty(t, request["arguments"])

			return []byte(`{"okay": true, "result": {"event-name": "Summer Fest"}}`), nil
		})

	caller := stacks.NewContractCaller(testBaseURL, testSender, httpClient, adapter.NewJSON())

	result, err := caller.CallReadOnly(context.Background(), "SP1", "summer-fest", stacks.EVENT_DETAILS_FUNCTION)
	require.NoError(t, err)

	resultMap, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Summer Fest", resultMap["event-name"])
}

func TestCallReadOnly_RejectedCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), gomock.Any(), "application/json", gomock.Any()).
		Return([]byte(`{"okay": false, "cause": "UndefinedFunction"}`), nil)

	caller := stacks.NewContractCaller(testBaseURL, testSender, httpClient, adapter.NewJSON())

	result, err := caller.CallReadOnly(context.Background(), "SP1", "summer-fest", stacks.EVENT_DETAILS_FUNCTION)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "UndefinedFunction")
}

func TestCallReadOnly_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), gomock.Any(), "application/json", gomock.Any()).
		Return(nil, fmt.Errorf("gateway timeout"))

	caller := stacks.NewContractCaller(testBaseURL, testSender, httpClient, adapter.NewJSON())

	result, err := caller.CallReadOnly(context.Background(), "SP1", "summer-fest", stacks.EVENT_DETAILS_FUNCTION)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestCallReadOnly_MalformedResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Post(gomock.Any(), gomock.Any(), "application/json", gomock.Any()).
		Return([]byte(`<html>502 Bad Gateway</html>`), nil)

	caller := stacks.NewContractCaller(testBaseURL, testSender, httpClient, adapter.NewJSON())

	result, err := caller.CallReadOnly(context.Background(), "SP1", "summer-fest", stacks.EVENT_DETAILS_FUNCTION)
	require.Error(t, err)
	assert.Nil(t, result)
}
