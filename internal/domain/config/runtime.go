package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot     string
	ConfigFile      string // scdeploy.toml path, empty if none was found
	DeploymentsFile string // absolute path of the persisted address map
	ArtifactsDir    string // hardhat artifacts directory

	// Network settings
	NetworkName string
	Network     *Network           // active network, nil if NetworkName is not configured
	Networks    map[string]Network // every known network, keyed by name

	// Accounts, in role order: deployer, owner, fee account, token owners
	PrivateKeys []string

	// Multi-sig threshold used when creating the owner wallet
	RequiredConfirmations int

	// Execution settings
	Debug        bool
	Timeout      time.Duration
	PollInterval time.Duration
}

// Network represents network configuration
type Network struct {
	Name    string `toml:"-" yaml:"name"`
	ChainID uint64 `toml:"chain_id" yaml:"chainId"` // 0 means "ask the node"
	RPCURL  string `toml:"rpc_url" yaml:"rpcUrl"`

	// MultiSigWalletFactory is the well-known address of the previously
	// deployed wallet factory on this network
	MultiSigWalletFactory string `toml:"multisig_wallet_factory" yaml:"multiSigWalletFactory"`
}
