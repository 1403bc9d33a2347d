package adapter_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
	"github.com/ticketmint/ticket-indexer/internal/logger"
	"github.com/ticketmint/ticket-indexer/internal/ratelimit"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newClient() adapter.HTTPClient {
	return adapter.NewHTTPClient(5*time.Second, ratelimit.New(0, 0))
}

func TestPost_ResendsFullBodyOnRetry(t *testing.T) {
	const payload = `{"sender":"SP000000000000000000002Q6VF78","arguments":[]}`

	var calls atomic.Int32
	var bodies [][]byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, body)

		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"okay": true}`))
	}))
	defer server.Close()

	resp, err := newClient().Post(context.Background(), server.URL, "application/json", bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	assert.Equal(t, `{"okay": true}`, string(resp))

	require.Len(t, bodies, 2)
	assert.Equal(t, payload, string(bodies[0]))
	assert.Equal(t, payload, string(bodies[1]))
}

func TestPost_NonOKStatusIsPermanent(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newClient().Post(context.Background(), server.URL, "application/json", bytes.NewReader([]byte("{}")))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total": 3}`))
	}))
	defer server.Close()

	var result struct {
		Total int `json:"total"`
	}
	require.NoError(t, newClient().Get(context.Background(), server.URL, &result))
	assert.Equal(t, 3, result.Total)
}
