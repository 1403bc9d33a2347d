package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// StacksConfig holds Stacks API configuration. The holdings index and the
// read-only contract call endpoint live under the same API host.
type StacksConfig struct {
	APIURL              string        `mapstructure:"api_url"`
	Sender              string        `mapstructure:"sender"` // principal reported on read-only calls
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`
	HoldingsPageSize    int           `mapstructure:"holdings_page_size"`
	HoldingsMaxPages    int           `mapstructure:"holdings_max_pages"`
	ContractCallTimeout time.Duration `mapstructure:"contract_call_timeout"`
	RequestsPerSecond   float64       `mapstructure:"requests_per_second"` // outbound throttle, 0 disables
	Burst               int           `mapstructure:"burst"`
}

// PipelineConfig holds discovery pipeline configuration
type PipelineConfig struct {
	WorkerPoolSize  int           `mapstructure:"worker_pool_size"` // concurrent per-contract metadata calls
	HoldingsTimeout time.Duration `mapstructure:"holdings_timeout"`
	RunTimeout      time.Duration `mapstructure:"run_timeout"` // bound on one full pipeline run
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig is the full configuration of the API service
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Stacks     StacksConfig   `mapstructure:"stacks"`
	Pipeline   PipelineConfig `mapstructure:"pipeline"`
	Cache      CacheConfig    `mapstructure:"cache"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// LoadAPIConfig loads the API service configuration
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("stacks.api_url", "https://api.mainnet.hiro.so")
	v.SetDefault("stacks.http_timeout", "10s")
	v.SetDefault("stacks.holdings_page_size", 200)
	v.SetDefault("stacks.holdings_max_pages", 10)
	v.SetDefault("stacks.contract_call_timeout", "5s")
	v.SetDefault("stacks.requests_per_second", 25.0)
	v.SetDefault("stacks.burst", 10)
	v.SetDefault("pipeline.worker_pool_size", 8)
	v.SetDefault("pipeline.holdings_timeout", "10s")
	v.SetDefault("pipeline.run_timeout", "25s")
	v.SetDefault("cache.ttl", "2m")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Stacks.Sender == "" {
		// Read-only calls need a syntactically valid sender; the burn
		// address works for every network
		config.Stacks.Sender = "SP000000000000000000002Q6VF78"
	}

	return &config, nil
}

// configureViper creates a viper instance with file discovery and env binding
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("TICKET_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds every config key so env-only deployments
// (no config file) still unmarshal cleanly
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Stacks
		"stacks.api_url",
		"stacks.sender",
		"stacks.http_timeout",
		"stacks.holdings_page_size",
		"stacks.holdings_max_pages",
		"stacks.contract_call_timeout",
		"stacks.requests_per_second",
		"stacks.burst",
		// Pipeline
		"pipeline.worker_pool_size",
		"pipeline.holdings_timeout",
		"pipeline.run_timeout",
		// Cache
		"cache.ttl",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env files: shared base first, then local overrides
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
