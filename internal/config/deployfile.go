package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/joho/godotenv"
)

// DeployFileName is the project configuration file looked up at the project root
const DeployFileName = "scdeploy.toml"

// loadEnvFiles loads .env and .env.local from the project root. Variables
// already present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadDeployFile loads and parses scdeploy.toml.
// Returns (nil, nil) when the file does not exist.
func loadDeployFile(path string) (*config.DeployFileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg config.DeployFileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	// Expand environment variables in every string value
	cfg.Network = os.ExpandEnv(cfg.Network)
	cfg.DeploymentsFile = os.ExpandEnv(cfg.DeploymentsFile)
	cfg.ArtifactsDir = os.ExpandEnv(cfg.ArtifactsDir)
	for i, key := range cfg.Accounts.Keys {
		cfg.Accounts.Keys[i] = os.ExpandEnv(key)
	}
	for name, network := range cfg.Networks {
		network.Name = name
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.MultiSigWalletFactory = os.ExpandEnv(network.MultiSigWalletFactory)
		cfg.Networks[name] = network
	}

	return &cfg, nil
}

// mergeNetworks overlays networks from scdeploy.toml on the built-in table.
// Empty fields keep the built-in value.
func mergeNetworks(file *config.DeployFileConfig) map[string]config.Network {
	networks := config.DefaultNetworks()
	if file == nil {
		return networks
	}

	for name, override := range file.Networks {
		merged, ok := networks[name]
		if !ok {
			merged = config.Network{Name: name}
		}
		if override.RPCURL != "" {
			merged.RPCURL = override.RPCURL
		}
		if override.ChainID != 0 {
			merged.ChainID = override.ChainID
		}
		if override.MultiSigWalletFactory != "" {
			merged.MultiSigWalletFactory = override.MultiSigWalletFactory
		}
		networks[name] = merged
	}
	return networks
}
