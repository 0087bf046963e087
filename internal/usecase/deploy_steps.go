package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// Step names, in the order they are registered
const (
	StepDeployMultiSigWalletFactory = "deploy-multisig-factory"
	StepDeployMultiSigWallet        = "deploy-multisig-wallet"
	StepDeployToken                 = "deploy-token"
	StepMintInitialSupply           = "mint-initial-supply"
	StepDistributeToken             = "distribute-token"
)

var (
	// InitialSupply is minted into the owner wallet right after the token is deployed
	InitialSupply = domain.MakeAmount(10_000_000_000)
	// DistributionAmount is moved from the owner wallet to the owner account
	DistributionAmount = domain.MakeAmount(5_000_000_000)
)

// DefaultStepNames is the step selection used when none is given. The
// factory already lives on every known network, so deploying a fresh one is
// opt-in.
func DefaultStepNames() []string {
	return []string{
		StepDeployMultiSigWallet,
		StepDeployToken,
		StepMintInitialSupply,
		StepDistributeToken,
	}
}

// DeploySteps builds the deploy steps from the injected ports
type DeploySteps struct {
	provider ContractProvider
	events   EventExtractor
	waiter   ReceiptWaiter
	log      *slog.Logger
}

// NewDeploySteps creates the step builder
func NewDeploySteps(provider ContractProvider, events EventExtractor, waiter ReceiptWaiter, log *slog.Logger) *DeploySteps {
	return &DeploySteps{
		provider: provider,
		events:   events,
		waiter:   waiter,
		log:      log,
	}
}

// All returns every step in registration order
func (d *DeploySteps) All() []Step {
	return []Step{
		d.DeployMultiSigWalletFactory(),
		d.DeployMultiSigWallet(),
		d.DeployToken(),
		d.MintInitialSupply(),
		d.DistributeToken(),
	}
}

// DeployMultiSigWalletFactory deploys a new factory and replaces the attached one for the rest of the run
func (d *DeploySteps) DeployMultiSigWalletFactory() Step {
	name := domain.MultiSigWalletFactoryContract
	return Step{
		Name:        StepDeployMultiSigWalletFactory,
		Description: "Deploying " + name,
		Run: func(ctx context.Context, state *DeployState) error {
			log := d.log.With("step", StepDeployMultiSigWalletFactory)
			log.Info("Deploy " + name + "...")

			contract, err := d.deploy(ctx, state.Accounts.Deployer, name)
			if err != nil {
				return err
			}

			state.Registry.AddContract(name, contract.Address(), contract)
			state.MarkDeployed(name)
			log.Info("Deployed "+name, "address", contract.Address().Hex())
			return nil
		},
	}
}

// DeployMultiSigWallet creates the owner wallet through the factory
func (d *DeploySteps) DeployMultiSigWallet() Step {
	name := domain.MultiSigWalletContract
	return Step{
		Name:        StepDeployMultiSigWallet,
		Description: "Deploying " + name,
		Requires:    []string{domain.MultiSigWalletFactoryContract},
		Run: func(ctx context.Context, state *DeployState) error {
			log := d.log.With("step", StepDeployMultiSigWallet)
			if address, ok := state.Registry.ContractAddress(name); ok && !state.Force {
				return skipStep("%s already deployed at %s", name, address.Hex())
			}

			factory, err := registered(state, StepDeployMultiSigWallet, domain.MultiSigWalletFactoryContract)
			if err != nil {
				return err
			}
			required := state.Registry.RequiredConfirmations
			if err := domain.CheckRequiredConfirmations(required, len(state.Accounts.TokenOwners)); err != nil {
				return err
			}
			log.Info("Deploy " + name + "...")

			tx, err := factory.Transact(ctx, state.Accounts.Deployer, "create",
				domain.OwnerWalletName,
				"",
				state.Accounts.TokenOwnerAddresses(),
				big.NewInt(int64(required)),
				big.NewInt(1),
			)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", name, err)
			}

			walletAddress, found, err := EventString(ctx, d.events, tx, factory.ABI(),
				domain.EventContractInstantiation, domain.FieldWallet)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", name, err)
			}
			if !found {
				return fmt.Errorf("failed to create %s: %w: %s", name, domain.ErrEventNotFound, domain.EventContractInstantiation)
			}

			walletFactory, err := d.provider.Factory(ctx, name)
			if err != nil {
				return err
			}
			wallet := walletFactory.Attach(common.HexToAddress(walletAddress))

			if members, err := walletMembers(ctx, wallet); err != nil {
				log.Warn("Failed to read wallet members", "error", err)
			} else {
				for idx, member := range members {
					log.Info(fmt.Sprintf("MultiSigWallet's owners[%d]: %s", idx, member.Hex()))
				}
			}

			state.Registry.AddContract(name, wallet.Address(), wallet)
			state.MarkDeployed(name)
			log.Info("Deployed "+name, "address", wallet.Address().Hex())
			return nil
		},
	}
}

// DeployToken deploys ACC owned by the wallet
func (d *DeploySteps) DeployToken() Step {
	name := domain.TokenContract
	return Step{
		Name:        StepDeployToken,
		Description: "Deploying " + name,
		Requires:    []string{domain.MultiSigWalletContract},
		Run: func(ctx context.Context, state *DeployState) error {
			log := d.log.With("step", StepDeployToken)
			if address, ok := state.Registry.ContractAddress(name); ok && !state.Force {
				return skipStep("%s already deployed at %s", name, address.Hex())
			}

			wallet, err := registered(state, StepDeployToken, domain.MultiSigWalletContract)
			if err != nil {
				return err
			}
			log.Info("Deploy " + name + "...")

			token, err := d.deploy(ctx, state.Accounts.Deployer, name, wallet.Address(), state.Accounts.FeeAccount.Address)
			if err != nil {
				return err
			}

			if owner, err := callAddress(ctx, token, "getOwner"); err != nil {
				log.Warn("Failed to read token owner", "error", err)
			} else if balance, err := callBigInt(ctx, token, "balanceOf", owner); err != nil {
				log.Warn("Failed to read owner balance", "error", err)
			} else {
				log.Info(fmt.Sprintf("%s token's owner: %s", name, owner.Hex()))
				log.Info(fmt.Sprintf("%s token's balance of owner: %s", name, domain.NewAmount(balance).DisplayString(true, 2)))
			}

			state.Registry.AddContract(name, token.Address(), token)
			state.MarkDeployed(name)
			log.Info("Deployed "+name, "address", token.Address().Hex())
			return nil
		},
	}
}

// MintInitialSupply mints the initial token supply into the wallet
func (d *DeploySteps) MintInitialSupply() Step {
	return Step{
		Name:        StepMintInitialSupply,
		Description: "Minting " + InitialSupply.String() + " " + domain.TokenContract,
		Requires:    []string{domain.TokenContract, domain.MultiSigWalletContract},
		Run: func(ctx context.Context, state *DeployState) error {
			log := d.log.With("step", StepMintInitialSupply)
			if !state.Force && !state.DeployedThisRun(domain.TokenContract) {
				return skipStep("%s was not deployed in this run", domain.TokenContract)
			}

			token, wallet, err := tokenAndWallet(state, StepMintInitialSupply)
			if err != nil {
				return err
			}

			data, err := encodeMint(InitialSupply.Value())
			if err != nil {
				return fmt.Errorf("failed to encode mint: %w", err)
			}

			id, err := d.submitAndConfirm(ctx, log, state, wallet, walletProposal{
				Purpose:     "token mint",
				Title:       "Mint",
				Description: "Mint " + InitialSupply.String(),
				Destination: token.Address(),
				Data:        data,
			})
			if err != nil {
				return err
			}

			log.Info(fmt.Sprintf("Mint %s to %s", domain.TokenContract, wallet.Address().Hex()),
				"amount", InitialSupply.DisplayString(true, 0),
				"transactionId", id.String())
			return nil
		},
	}
}

// DistributeToken transfers part of the wallet's tokens to the owner account
func (d *DeploySteps) DistributeToken() Step {
	return Step{
		Name:        StepDistributeToken,
		Description: "Distributing " + DistributionAmount.String() + " " + domain.TokenContract,
		Requires:    []string{domain.TokenContract, domain.MultiSigWalletContract},
		Run: func(ctx context.Context, state *DeployState) error {
			log := d.log.With("step", StepDistributeToken)
			if !state.Force && !state.DeployedThisRun(domain.TokenContract) {
				return skipStep("%s was not deployed in this run", domain.TokenContract)
			}

			token, wallet, err := tokenAndWallet(state, StepDistributeToken)
			if err != nil {
				return err
			}
			recipient := state.Accounts.Owner.Address

			data, err := encodeTransfer(recipient, DistributionAmount.Value())
			if err != nil {
				return fmt.Errorf("failed to encode transfer: %w", err)
			}

			id, err := d.submitAndConfirm(ctx, log, state, wallet, walletProposal{
				Purpose:     "token transfer",
				Title:       "Transfer",
				Description: fmt.Sprintf("Transfer %s to %s", DistributionAmount.String(), recipient.Hex()),
				Destination: token.Address(),
				Data:        data,
			})
			if err != nil {
				return err
			}

			log.Info(fmt.Sprintf("Transfer %s to %s", domain.TokenContract, recipient.Hex()),
				"amount", DistributionAmount.DisplayString(true, 0),
				"transactionId", id.String())
			return nil
		},
	}
}

// registered returns the contract step depends on, or a MissingPrerequisiteErr
func registered(state *DeployState, step, name string) (Contract, error) {
	contract, ok := state.Registry.Contract(name)
	if !ok {
		return nil, &domain.MissingPrerequisiteErr{Step: step, Contracts: []string{name}}
	}
	return contract, nil
}

func tokenAndWallet(state *DeployState, step string) (Contract, Contract, error) {
	token, tokenOK := state.Registry.Contract(domain.TokenContract)
	wallet, walletOK := state.Registry.Contract(domain.MultiSigWalletContract)
	if tokenOK && walletOK {
		return token, wallet, nil
	}

	var missing []string
	if !tokenOK {
		missing = append(missing, domain.TokenContract)
	}
	if !walletOK {
		missing = append(missing, domain.MultiSigWalletContract)
	}
	return nil, nil, &domain.MissingPrerequisiteErr{Step: step, Contracts: missing}
}

func (d *DeploySteps) deploy(ctx context.Context, from *models.Account, name string, args ...any) (Contract, error) {
	factory, err := d.provider.Factory(ctx, name)
	if err != nil {
		return nil, err
	}

	contract, tx, err := factory.Deploy(ctx, from, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	if _, err := d.waiter.WaitMined(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	return contract, nil
}

func walletMembers(ctx context.Context, wallet Contract) ([]common.Address, error) {
	out, err := wallet.Call(ctx, "getMembers")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("getMembers returned nothing")
	}
	members, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("getMembers: unexpected type %T", out[0])
	}
	return members, nil
}

func callAddress(ctx context.Context, contract Contract, method string, args ...any) (common.Address, error) {
	out, err := contract.Call(ctx, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	if len(out) == 0 {
		return common.Address{}, fmt.Errorf("%s returned nothing", method)
	}
	address, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("%s: unexpected type %T", method, out[0])
	}
	return address, nil
}

func callBigInt(ctx context.Context, contract Contract, method string, args ...any) (*big.Int, error) {
	out, err := contract.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned nothing", method)
	}
	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected type %T", method, out[0])
	}
	return value, nil
}
