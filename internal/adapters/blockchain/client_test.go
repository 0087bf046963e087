package blockchain_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/adapters/blockchain"
	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simChain struct {
	backend *simulated.Backend
	client  *blockchain.Client
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
}

func newSimChain(t *testing.T) *simChain {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	backend := simulated.NewBackend(types.GenesisAlloc{
		from: {Balance: new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))},
	})
	t.Cleanup(func() { _ = backend.Close() })

	chainID, err := backend.Client().ChainID(context.Background())
	require.NoError(t, err)

	return &simChain{
		backend: backend,
		client:  blockchain.NewClientWithRPC(backend.Client(), chainID, 10*time.Millisecond, logging.Discard()),
		key:     key,
		from:    from,
		chainID: chainID,
	}
}

// transfer sends value wei to to without committing a block
func (s *simChain) transfer(t *testing.T, to common.Address, value *big.Int) *types.Transaction {
	ctx := context.Background()
	nonce, err := s.backend.Client().PendingNonceAt(ctx, s.from)
	require.NoError(t, err)

	tx, err := types.SignTx(types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(params.GWei),
		GasFeeCap: big.NewInt(100 * params.GWei),
		Gas:       21000,
		To:        &to,
		Value:     value,
	}), types.LatestSignerForChainID(s.chainID), s.key)
	require.NoError(t, err)
	require.NoError(t, s.backend.Client().SendTransaction(ctx, tx))
	return tx
}

func TestClient_WaitMined(t *testing.T) {
	sim := newSimChain(t)
	recipient := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	tx := sim.transfer(t, recipient, big.NewInt(params.Ether))
	sim.backend.Commit()

	receipt, err := sim.client.WaitMined(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
	assert.Equal(t, tx.Hash(), receipt.TxHash)

	balance, err := sim.client.BalanceAt(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(params.Ether), balance)
}

func TestClient_WaitMinedPollsUntilCommitted(t *testing.T) {
	sim := newSimChain(t)
	tx := sim.transfer(t, common.HexToAddress("0x01"), big.NewInt(1))

	go func() {
		time.Sleep(50 * time.Millisecond)
		sim.backend.Commit()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	receipt, err := sim.client.WaitMined(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
}

func TestClient_WaitMinedHonoursContext(t *testing.T) {
	sim := newSimChain(t)
	tx := sim.transfer(t, common.HexToAddress("0x01"), big.NewInt(1))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := sim.client.WaitMined(ctx, tx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_CheckDeploymentExists(t *testing.T) {
	sim := newSimChain(t)

	exists, reason, err := sim.client.CheckDeploymentExists(context.Background(), sim.from)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "no code at address", reason)
}

func TestClient_Backend(t *testing.T) {
	sim := newSimChain(t)

	backend, chainID, err := sim.client.Backend(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, backend)
	assert.Equal(t, sim.chainID, chainID)
}

func TestClient_UnconfiguredNetwork(t *testing.T) {
	client := blockchain.NewClient(&config.RuntimeConfig{NetworkName: "nowhere"}, logging.Discard())

	_, err := client.BalanceAt(context.Background(), common.Address{})
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

	client = blockchain.NewClient(&config.RuntimeConfig{
		NetworkName: "empty",
		Network:     &config.Network{Name: "empty"},
	}, logging.Discard())
	_, _, err = client.Backend(context.Background())
	assert.ErrorContains(t, err, "no RPC URL configured for network empty")

	// Close without a connection is a no-op
	client.Close()
}
