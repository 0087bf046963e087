package usecase

import (
	"context"
	"math/big"

	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Contract is a live handle on a contract at a fixed address
type Contract interface {
	Name() string
	Address() common.Address
	ABI() *abi.ABI
	// Call runs a read-only method and returns its unpacked outputs
	Call(ctx context.Context, method string, args ...any) ([]any, error)
	// Transact signs and submits a state-changing call; it does not wait for mining
	Transact(ctx context.Context, from *models.Account, method string, args ...any) (*types.Transaction, error)
}

// ContractFactory deploys new instances of one contract interface or attaches
// to existing ones
type ContractFactory interface {
	Name() string
	ABI() *abi.ABI
	Deploy(ctx context.Context, from *models.Account, args ...any) (Contract, *types.Transaction, error)
	Attach(address common.Address) Contract
}

// ContractProvider looks up contract interfaces by name
type ContractProvider interface {
	Factory(ctx context.Context, name string) (ContractFactory, error)
}

// ReceiptWaiter blocks until a transaction is mined
type ReceiptWaiter interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// EventExtractor waits for a transaction's receipt and reads one field of the
// first matching event. found is false when no log matches.
type EventExtractor interface {
	EventValue(ctx context.Context, tx *types.Transaction, contractABI *abi.ABI, event, field string) (value any, found bool, err error)
}

// DeploymentStore handles persistence of the contract name -> address map
type DeploymentStore interface {
	Exists() bool
	Load(ctx context.Context) (map[string]common.Address, error)
	Save(ctx context.Context, addresses map[string]common.Address) error
	Path() string
}

// BlockchainChecker checks on-chain state of deployed contracts
type BlockchainChecker interface {
	CheckDeploymentExists(ctx context.Context, address common.Address) (exists bool, reason string, err error)
}

// BalanceReader reads native coin balances
type BalanceReader interface {
	BalanceAt(ctx context.Context, address common.Address) (*big.Int, error)
}

// TokenBalanceReader reads ERC20 balances
type TokenBalanceReader interface {
	TokenBalanceAt(ctx context.Context, token, holder common.Address) (*big.Int, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
