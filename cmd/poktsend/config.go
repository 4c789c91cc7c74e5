package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/poktfn/pocket-go/pkg/codec"
	"github.com/poktfn/pocket-go/pkg/log"
)

const (
	configDirPathEnv     = "POKTSEND_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
)

// Config represents the overall application configuration.
type Config struct {
	// PrivateKeyHex is the 128-character hex private key used to sign.
	PrivateKeyHex string `env:"POKTSEND_PRIVATE_KEY"`
	// NodeURL is the base URL of the full node broadcasts go to.
	NodeURL string `env:"POKTSEND_NODE_URL"`
	// ChainID selects the target network.
	ChainID string `env:"POKTSEND_CHAIN_ID" env-default:"mainnet"`

	chainTable *codec.ChainTable
}

// LoadConfig builds configuration from environment variables and the optional
// chains.yaml override file in the config directory.
func LoadConfig(logger log.Logger) (*Config, error) {
	logger = logger.NewSystem("config")

	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	if err := godotenv.Load(configDotEnvPath); err != nil {
		logger.Debug(".env file not found", "path", configDotEnvPath)
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if config.PrivateKeyHex == "" {
		return nil, fmt.Errorf("POKTSEND_PRIVATE_KEY environment variable is required")
	}
	if config.NodeURL == "" {
		return nil, fmt.Errorf("POKTSEND_NODE_URL environment variable is required")
	}
	if _, err := codec.ParseChainID(config.ChainID); err != nil {
		return nil, err
	}

	// A chains.yaml in the config directory overrides the built-in scheme
	// table; its absence is not an error.
	if _, err := os.Stat(filepath.Join(configDirPath, "chains.yaml")); err == nil {
		table, err := codec.LoadChainTable(configDirPath)
		if err != nil {
			return nil, err
		}
		config.chainTable = table
		logger.Info("loaded chain table override", "dir", configDirPath)
	}

	return &config, nil
}
