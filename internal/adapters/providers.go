package adapters

import (
	"github.com/bosagora/sidechain-deployer/internal/adapters/artifacts"
	"github.com/bosagora/sidechain-deployer/internal/adapters/blockchain"
	"github.com/bosagora/sidechain-deployer/internal/adapters/repository/deployments"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/google/wire"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentStore), new(*deployments.FileRepository)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ReceiptWaiter), new(*blockchain.Client)),
	wire.Bind(new(usecase.BalanceReader), new(*blockchain.Client)),
	wire.Bind(new(usecase.TokenBalanceReader), new(*blockchain.Client)),
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.Client)),
	wire.Bind(new(artifacts.Backend), new(*blockchain.Client)),

	blockchain.NewEventExtractor,
	wire.Bind(new(usecase.EventExtractor), new(*blockchain.EventExtractor)),
)

// ContractSet provides contract interface resolution
var ContractSet = wire.NewSet(
	artifacts.NewProvider,
	wire.Bind(new(usecase.ContractProvider), new(*artifacts.Provider)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BlockchainSet,
	ContractSet,
)
