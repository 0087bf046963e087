package app

import (
	"github.com/bosagora/sidechain-deployer/internal/adapters/blockchain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	RunDeployment   *usecase.RunDeployment
	ListDeployments *usecase.ListDeployments
	ShowAccounts    *usecase.ShowAccounts
	ListNetworks    *usecase.ListNetworks
	ShowConfig      *usecase.ShowConfig

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	client *blockchain.Client,
	runDeployment *usecase.RunDeployment,
	listDeployments *usecase.ListDeployments,
	showAccounts *usecase.ShowAccounts,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
) (*App, error) {
	return &App{
		Config:          cfg,
		RunDeployment:   runDeployment,
		ListDeployments: listDeployments,
		ShowAccounts:    showAccounts,
		ListNetworks:    listNetworks,
		ShowConfig:      showConfig,
		client:          client,
	}, nil
}

// Close releases the node connection, if one was opened
func (a *App) Close() {
	a.client.Close()
}
