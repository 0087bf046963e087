package artifacts_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/adapters/artifacts"
	"github.com/bosagora/sidechain-deployer/internal/adapters/blockchain"
	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/bosagora/sidechain-deployer/internal/logging"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerArtifact deploys a contract whose runtime code returns 42 for any call
const answerArtifact = `{
  "contractName": "Answer",
  "abi": [{"type":"function","name":"answer","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}],
  "bytecode": "0x600a600c600039600a6000f3602a60005260206000f3"
}`

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, "contracts", name+".sol", name+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProvider_EmbeddedABIs(t *testing.T) {
	provider := artifacts.NewProvider(&config.RuntimeConfig{}, nil, logging.Discard())
	ctx := context.Background()

	tests := []struct {
		name    string
		methods []string
		events  []string
	}{
		{
			name:    domain.MultiSigWalletFactoryContract,
			methods: []string{"create"},
			events:  []string{domain.EventContractInstantiation},
		},
		{
			name:    domain.MultiSigWalletContract,
			methods: []string{"submitTransaction", "confirmTransaction", "getMembers"},
			events:  []string{domain.EventSubmission, domain.EventExecution},
		},
		{
			name:    domain.TokenContract,
			methods: []string{"mint", "transfer", "balanceOf", "getOwner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, err := provider.Factory(ctx, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, factory.Name())

			for _, method := range tt.methods {
				assert.Contains(t, factory.ABI().Methods, method)
			}
			for _, event := range tt.events {
				assert.Contains(t, factory.ABI().Events, event)
			}

			// Embedded interfaces carry no bytecode
			_, _, err = factory.Deploy(ctx, nil)
			assert.ErrorIs(t, err, domain.ErrNoBytecode)

			address := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
			contract := factory.Attach(address)
			assert.Equal(t, address, contract.Address())
			assert.Equal(t, tt.name, contract.Name())
		})
	}
}

func TestProvider_UnknownContract(t *testing.T) {
	provider := artifacts.NewProvider(&config.RuntimeConfig{ArtifactsDir: t.TempDir()}, nil, logging.Discard())

	_, err := provider.Factory(context.Background(), "Governor")
	assert.ErrorIs(t, err, domain.ErrUnknownContract)
}

func TestProvider_ArtifactsDirTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, domain.TokenContract, answerArtifact)

	provider := artifacts.NewProvider(&config.RuntimeConfig{ArtifactsDir: dir}, nil, logging.Discard())
	factory, err := provider.Factory(context.Background(), domain.TokenContract)
	require.NoError(t, err)

	assert.Contains(t, factory.ABI().Methods, "answer")
	assert.NotContains(t, factory.ABI().Methods, "mint")

	again, err := provider.Factory(context.Background(), domain.TokenContract)
	require.NoError(t, err)
	assert.Same(t, factory, again)
}

func TestProvider_MalformedArtifact(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, domain.TokenContract, `{"abi": "not an abi"`)

	provider := artifacts.NewProvider(&config.RuntimeConfig{ArtifactsDir: dir}, nil, logging.Discard())
	_, err := provider.Factory(context.Background(), domain.TokenContract)
	assert.ErrorContains(t, err, "failed to parse artifact")
}

func newDeployer(t *testing.T) (*simulated.Backend, *blockchain.Client, *models.Account) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := accountFor(key)

	backend := simulated.NewBackend(types.GenesisAlloc{
		account.Address: {Balance: new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))},
	})
	t.Cleanup(func() { _ = backend.Close() })

	client := blockchain.NewClientWithRPC(backend.Client(), nil, 10*time.Millisecond, logging.Discard())
	return backend, client, account
}

func accountFor(key *ecdsa.PrivateKey) *models.Account {
	return &models.Account{
		Role:    models.RoleDeployer,
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Key:     key,
	}
}

func TestFactory_DeployAndCall(t *testing.T) {
	ctx := context.Background()
	backend, client, deployer := newDeployer(t)

	dir := t.TempDir()
	writeArtifact(t, dir, "Answer", answerArtifact)
	provider := artifacts.NewProvider(&config.RuntimeConfig{ArtifactsDir: dir}, client, logging.Discard())

	factory, err := provider.Factory(ctx, "Answer")
	require.NoError(t, err)

	contract, tx, err := factory.Deploy(ctx, deployer)
	require.NoError(t, err)
	backend.Commit()

	_, err = client.WaitMined(ctx, tx)
	require.NoError(t, err)

	exists, _, err := client.CheckDeploymentExists(ctx, contract.Address())
	require.NoError(t, err)
	assert.True(t, exists)

	out, err := contract.Call(ctx, "answer")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, big.NewInt(42), out[0])
}

func TestContract_TransactNeedsKey(t *testing.T) {
	_, client, _ := newDeployer(t)
	provider := artifacts.NewProvider(&config.RuntimeConfig{}, client, logging.Discard())

	factory, err := provider.Factory(context.Background(), domain.TokenContract)
	require.NoError(t, err)

	contract := factory.Attach(common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"))
	_, err = contract.Transact(context.Background(), &models.Account{}, "mint", big.NewInt(1))
	assert.ErrorContains(t, err, "no signing key")
}
