package config

import (
	"maps"
	"slices"
)

const (
	BosagoraMainnet = "bosagora_mainnet"
	BosagoraTestnet = "bosagora_testnet"
	BosagoraDevnet  = "bosagora_devnet"

	// DefaultNetwork is the network used when none is selected
	DefaultNetwork = BosagoraDevnet
)

// placeholderFactoryAddress is the wallet factory currently recorded for every
// BOSagora environment
const placeholderFactoryAddress = "0xF120890C71B2B9fF4578088A398a2402Ae0d3616"

// DefaultNetworks returns a fresh copy of the built-in network table. Entries
// from scdeploy.toml are merged over it.
func DefaultNetworks() map[string]Network {
	return map[string]Network{
		BosagoraMainnet: {
			Name:                  BosagoraMainnet,
			RPCURL:                "https://mainnet.bosagora.org",
			MultiSigWalletFactory: placeholderFactoryAddress,
		},
		BosagoraTestnet: {
			Name:                  BosagoraTestnet,
			RPCURL:                "https://testnet.bosagora.org",
			MultiSigWalletFactory: placeholderFactoryAddress,
		},
		BosagoraDevnet: {
			Name:                  BosagoraDevnet,
			RPCURL:                "http://localhost:8545",
			MultiSigWalletFactory: placeholderFactoryAddress,
		},
	}
}

// NetworkNames returns the sorted names of a network table
func NetworkNames(networks map[string]Network) []string {
	return slices.Sorted(maps.Keys(networks))
}
