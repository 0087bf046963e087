package artifacts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Contract is a handle bound to the backend on every call, so attaching
// never needs a connection
type Contract struct {
	name    string
	address common.Address
	abi     abi.ABI
	backend Backend
}

func (c *Contract) Name() string            { return c.name }
func (c *Contract) Address() common.Address { return c.address }
func (c *Contract) ABI() *abi.ABI           { return &c.abi }

// Call runs a read-only method at the latest block
func (c *Contract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	bound, _, err := c.bind(ctx)
	if err != nil {
		return nil, err
	}

	var out []any
	if err := bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.name, method, err)
	}
	return out, nil
}

// Transact signs method with from's key and sends it
func (c *Contract) Transact(ctx context.Context, from *models.Account, method string, args ...any) (*types.Transaction, error) {
	bound, chainID, err := c.bind(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := transactOpts(ctx, from, chainID)
	if err != nil {
		return nil, err
	}

	tx, err := bound.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.name, method, err)
	}
	return tx, nil
}

func (c *Contract) bind(ctx context.Context) (*bind.BoundContract, *big.Int, error) {
	backend, chainID, err := c.backend.Backend(ctx)
	if err != nil {
		return nil, nil, err
	}
	return bind.NewBoundContract(c.address, c.abi, backend, backend, backend), chainID, nil
}

func transactOpts(ctx context.Context, from *models.Account, chainID *big.Int) (*bind.TransactOpts, error) {
	if from == nil || from.Key == nil {
		return nil, fmt.Errorf("no signing key")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(from.Key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for %s: %w", from.Address.Hex(), err)
	}
	opts.Context = ctx
	return opts, nil
}

var _ usecase.Contract = (*Contract)(nil)
