package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/lmittmann/w3"
)

// DefaultPollInterval is used when no poll interval is configured
const DefaultPollInterval = time.Second

var funcBalanceOf = w3.MustNewFunc("balanceOf(address)", "uint256")

// RPC is the part of an Ethereum client the adapters use. Both ethclient and
// the simulated backend satisfy it.
type RPC interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client connects lazily to the active network's node
type Client struct {
	network      *config.Network
	networkName  string
	pollInterval time.Duration
	log          *slog.Logger

	rpc     RPC
	chainID *big.Int
	closer  func()
}

// NewClient creates a client for the active network of cfg. Nothing is dialed
// until the first call.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Client{
		network:      cfg.Network,
		networkName:  cfg.NetworkName,
		pollInterval: pollInterval,
		log:          log.With("component", "Client"),
	}
}

// NewClientWithRPC wraps an already connected backend
func NewClientWithRPC(rpc RPC, chainID *big.Int, pollInterval time.Duration, log *slog.Logger) *Client {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Client{
		rpc:          rpc,
		chainID:      chainID,
		pollInterval: pollInterval,
		log:          log.With("component", "Client"),
	}
}

// Connect dials the node and verifies its chain ID
func (c *Client) Connect(ctx context.Context) error {
	_, _, err := c.connect(ctx)
	return err
}

func (c *Client) connect(ctx context.Context) (RPC, *big.Int, error) {
	if c.rpc != nil {
		if c.chainID == nil {
			chainID, err := c.rpc.ChainID(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
			}
			c.chainID = chainID
		}
		return c.rpc, c.chainID, nil
	}

	if c.network == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnknownNetwork, c.networkName)
	}
	if c.network.RPCURL == "" {
		return nil, nil, fmt.Errorf("no RPC URL configured for network %s", c.networkName)
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	// Verify chain ID matches
	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		client.Close()
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, networkChainID.Uint64())
	}

	c.log.Debug("Connected", "network", c.networkName, "rpc", c.network.RPCURL, "chainId", networkChainID)
	c.rpc = client
	c.chainID = networkChainID
	c.closer = client.Close
	return c.rpc, c.chainID, nil
}

// Backend returns the contract backend and the chain ID used for signing
func (c *Client) Backend(ctx context.Context) (bind.ContractBackend, *big.Int, error) {
	return c.connect(ctx)
}

// WaitMined polls for the receipt of tx until it is mined or ctx is done.
// A receipt with failed status is returned together with ErrTransactionReverted.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	rpc, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := rpc.TransactionReceipt(ctx, tx.Hash())
		if err == nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, tx.Hash().Hex())
			}
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			c.log.Debug("Receipt retrieval failed", "tx", tx.Hash().Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// BalanceAt returns the latest native balance of address
func (c *Client) BalanceAt(ctx context.Context, address common.Address) (*big.Int, error) {
	rpc, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return rpc.BalanceAt(ctx, address, nil)
}

// TokenBalanceAt returns the ERC20 balance of holder
func (c *Client) TokenBalanceAt(ctx context.Context, token, holder common.Address) (*big.Int, error) {
	rpc, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	input, err := funcBalanceOf.EncodeArgs(holder)
	if err != nil {
		return nil, err
	}
	output, err := rpc.CallContract(ctx, ethereum.CallMsg{To: &token, Data: input}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}

	var balance *big.Int
	if err := funcBalanceOf.DecodeReturns(output, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode balanceOf: %w", err)
	}
	return balance, nil
}

// Close releases the connection if one was dialed
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
		c.closer = nil
		c.rpc = nil
	}
}

var (
	_ usecase.ReceiptWaiter      = (*Client)(nil)
	_ usecase.BalanceReader      = (*Client)(nil)
	_ usecase.TokenBalanceReader = (*Client)(nil)
)
