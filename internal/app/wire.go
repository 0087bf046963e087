//go:build wireinject
// +build wireinject

package app

import (
	"github.com/bosagora/sidechain-deployer/internal/adapters"
	"github.com/bosagora/sidechain-deployer/internal/config"
	"github.com/bosagora/sidechain-deployer/internal/logging"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeploySteps,
		usecase.NewRunDeployment,
		usecase.NewListDeployments,
		usecase.NewShowAccounts,
		usecase.NewListNetworks,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
