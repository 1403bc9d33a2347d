package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketmint/ticket-indexer/internal/config"
)

func TestLoadAPIConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
	assert.Equal(t, 120, cfg.Server.IdleTimeout)

	assert.Equal(t, "https://api.mainnet.hiro.so", cfg.Stacks.APIURL)
	assert.Equal(t, "SP000000000000000000002Q6VF78", cfg.Stacks.Sender)
	assert.Equal(t, 10*time.Second, cfg.Stacks.HTTPTimeout)
	assert.Equal(t, 200, cfg.Stacks.HoldingsPageSize)
	assert.Equal(t, 10, cfg.Stacks.HoldingsMaxPages)
	assert.Equal(t, 5*time.Second, cfg.Stacks.ContractCallTimeout)
	assert.Equal(t, 25.0, cfg.Stacks.RequestsPerSecond)
	assert.Equal(t, 10, cfg.Stacks.Burst)

	assert.Equal(t, 8, cfg.Pipeline.WorkerPoolSize)
	assert.Equal(t, 10*time.Second, cfg.Pipeline.HoldingsTimeout)
	assert.Equal(t, 25*time.Second, cfg.Pipeline.RunTimeout)

	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
}

func TestLoadAPIConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TICKET_INDEXER_DEBUG", "true")
	t.Setenv("TICKET_INDEXER_SERVER_PORT", "9090")
	t.Setenv("TICKET_INDEXER_STACKS_API_URL", "https://api.testnet.hiro.so")
	t.Setenv("TICKET_INDEXER_STACKS_SENDER", "ST000000000000000000002AMW42H")
	t.Setenv("TICKET_INDEXER_PIPELINE_WORKER_POOL_SIZE", "2")
	t.Setenv("TICKET_INDEXER_CACHE_TTL", "30s")

	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://api.testnet.hiro.so", cfg.Stacks.APIURL)
	assert.Equal(t, "ST000000000000000000002AMW42H", cfg.Stacks.Sender)
	assert.Equal(t, 2, cfg.Pipeline.WorkerPoolSize)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoadAPIConfig_ConfigFileNotFoundIsTolerated(t *testing.T) {
	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, cfg)
}
