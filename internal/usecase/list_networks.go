package usecase

import (
	"context"

	"github.com/bosagora/sidechain-deployer/internal/domain/config"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents one configured network
type NetworkStatus struct {
	config.Network
	Active bool
	// FactoryValid is false when the wallet factory address is missing or malformed
	FactoryValid bool
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{config: cfg}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := config.NetworkNames(uc.config.Networks)
	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		network := uc.config.Networks[name]
		_, err := FactoryAddress(name, &network)
		networks = append(networks, NetworkStatus{
			Network:      network,
			Active:       name == uc.config.NetworkName,
			FactoryValid: err == nil,
		})
	}

	return &ListNetworksResult{Networks: networks}, nil
}
