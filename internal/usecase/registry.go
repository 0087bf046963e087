package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// DeployedContract is a registry record
type DeployedContract struct {
	Name     string
	Address  common.Address
	Contract Contract
}

// Registry holds the contracts known to a deployment run. It has a single
// owner and is not safe for concurrent use.
type Registry struct {
	networkName string
	network     *config.Network
	provider    ContractProvider
	store       DeploymentStore
	log         *slog.Logger

	// RequiredConfirmations is the multi-sig threshold used at wallet creation
	RequiredConfirmations int

	deployments map[string]*DeployedContract

	// factory is the MultiSigWalletFactory pseudo-entry. It comes from the
	// network table and is never persisted.
	factory *DeployedContract
}

// NewRegistry creates an empty registry for the active network of cfg
func NewRegistry(cfg *config.RuntimeConfig, provider ContractProvider, store DeploymentStore, log *slog.Logger) *Registry {
	required := cfg.RequiredConfirmations
	if required == 0 {
		required = domain.DefaultRequiredConfirmations
	}
	return &Registry{
		networkName:           cfg.NetworkName,
		network:               cfg.Network,
		provider:              provider,
		store:                 store,
		log:                   log.With("component", "Registry"),
		RequiredConfirmations: required,
		deployments:           make(map[string]*DeployedContract),
	}
}

// FactoryAddress resolves the well-known wallet factory address of the active network
func FactoryAddress(networkName string, network *config.Network) (common.Address, error) {
	if network == nil {
		return common.Address{}, fmt.Errorf("%w: %s", domain.ErrUnknownNetwork, networkName)
	}
	if !common.IsHexAddress(network.MultiSigWalletFactory) {
		return common.Address{}, fmt.Errorf("%w for network %s", domain.ErrFactoryAddressMissing, networkName)
	}
	return common.HexToAddress(network.MultiSigWalletFactory), nil
}

// AttachPreviousContracts binds the wallet factory already deployed on the
// active network. Failure is a configuration error.
func (r *Registry) AttachPreviousContracts(ctx context.Context) error {
	address, err := FactoryAddress(r.networkName, r.network)
	if err != nil {
		return err
	}

	factory, err := r.provider.Factory(ctx, domain.MultiSigWalletFactoryContract)
	if err != nil {
		return fmt.Errorf("failed to resolve %s interface: %w", domain.MultiSigWalletFactoryContract, err)
	}

	r.factory = &DeployedContract{
		Name:     domain.MultiSigWalletFactoryContract,
		Address:  address,
		Contract: factory.Attach(address),
	}
	r.log.Debug("Attached previous contract", "contract", domain.MultiSigWalletFactoryContract, "address", address.Hex())
	return nil
}

// AddContract inserts or replaces a record
func (r *Registry) AddContract(name string, address common.Address, contract Contract) {
	record := &DeployedContract{Name: name, Address: address, Contract: contract}
	if name == domain.MultiSigWalletFactoryContract {
		r.factory = record
		return
	}
	r.deployments[name] = record
}

// Contract looks up a live contract handle by name
func (r *Registry) Contract(name string) (Contract, bool) {
	record, ok := r.record(name)
	if !ok {
		return nil, false
	}
	return record.Contract, true
}

// ContractAddress looks up a contract address by name
func (r *Registry) ContractAddress(name string) (common.Address, bool) {
	if name == domain.MultiSigWalletFactoryContract && r.factory == nil {
		address, err := FactoryAddress(r.networkName, r.network)
		return address, err == nil
	}
	record, ok := r.record(name)
	if !ok {
		return common.Address{}, false
	}
	return record.Address, true
}

func (r *Registry) record(name string) (*DeployedContract, bool) {
	if name == domain.MultiSigWalletFactoryContract {
		return r.factory, r.factory != nil
	}
	record, ok := r.deployments[name]
	return record, ok
}

// Load re-attaches every contract recorded in the persisted file. A missing
// file is not an error; an unreadable one is.
func (r *Registry) Load(ctx context.Context) error {
	if !r.store.Exists() {
		r.log.Debug("No deployments file", "path", r.store.Path())
		return nil
	}

	addresses, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deployments: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(addresses)) {
		address := addresses[name]
		if name == domain.MultiSigWalletFactoryContract {
			r.log.Warn("Ignoring persisted factory entry", "address", address.Hex())
			continue
		}

		r.log.Info(fmt.Sprintf("Load %s - %s...", name, address.Hex()))
		factory, err := r.provider.Factory(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to attach %s: %w", name, err)
		}
		r.deployments[name] = &DeployedContract{
			Name:     name,
			Address:  address,
			Contract: factory.Attach(address),
		}
	}

	return nil
}

// Save overwrites the persisted file with every record except the factory
func (r *Registry) Save(ctx context.Context) error {
	addresses := make(map[string]common.Address, len(r.deployments))
	for name, record := range r.deployments {
		addresses[name] = record.Address
	}
	if err := r.store.Save(ctx, addresses); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// Deployments returns the persisted records sorted by name
func (r *Registry) Deployments() []*models.Deployment {
	result := make([]*models.Deployment, 0, len(r.deployments))
	for _, name := range slices.Sorted(maps.Keys(r.deployments)) {
		result = append(result, &models.Deployment{
			Name:    name,
			Address: r.deployments[name].Address,
		})
	}
	return result
}
