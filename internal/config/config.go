package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"token_verifier/internal/entity"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server       ServerConfig             `yaml:"server"`
	Chains       []entity.ChainDefinition `yaml:"chains"`
	Logging      LoggingConfig            `yaml:"logging"`
	Cache        CacheConfig              `yaml:"cache"`
	RpcClient    RpcClientConfig          `yaml:"rpcClient"`
	Explorer     ExplorerConfig           `yaml:"explorer"`
	Verification VerificationConfig       `yaml:"verification"`
	GasPrice     GasPriceConfig           `yaml:"gasPrice"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// CacheConfig holds configuration for the verification cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttlMinutes"`
}

// RpcClientConfig holds configuration for RPC clients.
type RpcClientConfig struct {
	ConnectionTimeoutMs int64 `yaml:"connectionTimeoutMs"`
	DefaultTimeoutMs    int64 `yaml:"defaultTimeoutMs"`
	MaxRetries          int   `yaml:"maxRetries"` // retries stay with the clients; 0 means none
}

// ExplorerConfig holds configuration for the block-explorer client.
type ExplorerConfig struct {
	RequestTimeoutMillis int64 `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   int   `yaml:"rateLimitPerSecond"`
	BurstLimit           int   `yaml:"burstLimit"`
	TopHolderLimit       int   `yaml:"topHolderLimit"`
}

// VerificationConfig holds configuration for the verification engine itself.
type VerificationConfig struct {
	DefaultChainID      int64   `yaml:"defaultChainId"`
	CrossChainIDs       []int64 `yaml:"crossChainIds"`
	ClassifierMode      string  `yaml:"classifierMode"` // "strict" or "loose"
	AnalysisTimeoutMs   int64   `yaml:"analysisTimeoutMs"`
	MaxConcurrentChains int     `yaml:"maxConcurrentChains"`
	ChecksumEIP55Compat bool    `yaml:"checksumEip55Compat"` // reserved: switch checksum variant once approved
}

// GasPriceConfig holds configuration for the background gas-price fetch job.
type GasPriceConfig struct {
	Enabled            bool  `yaml:"enabled"`
	RefreshIntervalSec int   `yaml:"refreshIntervalSec"`
	CacheTTLMinutes    int   `yaml:"cacheTTLMinutes"`
	FetchTimeoutMillis int64 `yaml:"fetchTimeoutMillis"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.applyDefaults()

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration with every documented default applied and
// no chains beyond the built-in registry. Used by the CLI and by tests.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 5
		logrus.Infof("Cache.TTLMinutes not set, defaulting to %d minutes", cfg.Cache.TTLMinutes)
	}
	if cfg.RpcClient.ConnectionTimeoutMs == 0 {
		cfg.RpcClient.ConnectionTimeoutMs = 10000
	}
	if cfg.RpcClient.DefaultTimeoutMs == 0 {
		cfg.RpcClient.DefaultTimeoutMs = 8000
	}
	if cfg.Explorer.RequestTimeoutMillis == 0 {
		cfg.Explorer.RequestTimeoutMillis = 10000
		logrus.Infof("Explorer.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Explorer.RequestTimeoutMillis)
	}
	if cfg.Explorer.RateLimitPerSecond == 0 {
		cfg.Explorer.RateLimitPerSecond = 4
	}
	if cfg.Explorer.BurstLimit == 0 {
		cfg.Explorer.BurstLimit = 2
	}
	if cfg.Explorer.TopHolderLimit == 0 {
		cfg.Explorer.TopHolderLimit = 10
	}
	if cfg.Verification.DefaultChainID == 0 {
		cfg.Verification.DefaultChainID = 1 // Ethereum mainnet
	}
	if len(cfg.Verification.CrossChainIDs) == 0 {
		cfg.Verification.CrossChainIDs = []int64{1, 56, 137, 42161, 8453}
	}
	if cfg.Verification.ClassifierMode == "" {
		cfg.Verification.ClassifierMode = "strict"
	}
	if cfg.Verification.AnalysisTimeoutMs == 0 {
		cfg.Verification.AnalysisTimeoutMs = 15000
	}
	if cfg.Verification.MaxConcurrentChains == 0 {
		cfg.Verification.MaxConcurrentChains = 5
	}
	if cfg.GasPrice.RefreshIntervalSec == 0 {
		cfg.GasPrice.RefreshIntervalSec = 60
	}
	if cfg.GasPrice.CacheTTLMinutes == 0 {
		cfg.GasPrice.CacheTTLMinutes = 5
	}
	if cfg.GasPrice.FetchTimeoutMillis == 0 {
		cfg.GasPrice.FetchTimeoutMillis = 5000
	}
}
