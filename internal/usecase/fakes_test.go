package usecase_test

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/bosagora/sidechain-deployer/internal/adapters/artifacts"
	"github.com/bosagora/sidechain-deployer/internal/adapters/blockchain"
	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/bosagora/sidechain-deployer/internal/logging"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// fakeChain keeps just enough state to play the factory, wallet and token.
// Transactions leave receipts whose logs are encoded with the contracts'
// embedded ABIs, so events are read back by the real extractor.
type fakeChain struct {
	mu sync.Mutex

	abis     map[string]*abi.ABI
	nonce    uint64
	nextAddr int64

	// deploys counts Deploy calls per contract name
	deploys map[string]int

	members  map[common.Address][]common.Address
	required map[common.Address]int
	owners   map[common.Address]common.Address
	balances map[common.Address]map[common.Address]*big.Int
	pending  map[common.Address]map[uint64]*pendingCall
	nextID   map[common.Address]uint64
	receipts map[common.Hash]*types.Receipt

	// executionOffset shifts the id reported by Execution events
	executionOffset uint64
	// failTransact makes the named method return an error
	failTransact map[string]error
}

type pendingCall struct {
	destination common.Address
	data        []byte
	confirmedBy map[common.Address]bool
	executed    bool
}

func newFakeChain(t *testing.T) *fakeChain {
	provider := artifacts.NewProvider(&config.RuntimeConfig{}, nil, logging.Discard())
	abis := make(map[string]*abi.ABI)
	for _, name := range []string{domain.MultiSigWalletFactoryContract, domain.MultiSigWalletContract, domain.TokenContract} {
		factory, err := provider.Factory(context.Background(), name)
		require.NoError(t, err)
		abis[name] = factory.ABI()
	}

	return &fakeChain{
		abis:         abis,
		nextAddr:     0x1000,
		deploys:      make(map[string]int),
		members:      make(map[common.Address][]common.Address),
		required:     make(map[common.Address]int),
		owners:       make(map[common.Address]common.Address),
		balances:     make(map[common.Address]map[common.Address]*big.Int),
		pending:      make(map[common.Address]map[uint64]*pendingCall),
		nextID:       make(map[common.Address]uint64),
		receipts:     make(map[common.Hash]*types.Receipt),
		failTransact: make(map[string]error),
	}
}

func (c *fakeChain) newAddress() common.Address {
	c.nextAddr++
	return common.BigToAddress(big.NewInt(c.nextAddr))
}

// newTx creates a mined transaction to the given address, nil for creations
func (c *fakeChain) newTx(to *common.Address) *types.Transaction {
	c.nonce++
	tx := types.NewTx(&types.LegacyTx{Nonce: c.nonce, To: to, GasPrice: big.NewInt(1), Gas: 21000})
	c.receipts[tx.Hash()] = &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: tx.Hash()}
	return tx
}

// emit appends an event log from contract to tx's receipt. args follow the
// event's inputs in declaration order.
func (c *fakeChain) emit(tx *types.Transaction, contract string, address common.Address, event string, args ...any) error {
	ev, ok := c.abis[contract].Events[event]
	if !ok {
		return fmt.Errorf("%s has no event %s", contract, event)
	}
	if len(args) != len(ev.Inputs) {
		return fmt.Errorf("%s: want %d args, got %d", event, len(ev.Inputs), len(args))
	}

	topics := []common.Hash{ev.ID}
	var data []any
	for i, input := range ev.Inputs {
		if !input.Indexed {
			data = append(data, args[i])
			continue
		}
		switch v := args[i].(type) {
		case *big.Int:
			topics = append(topics, common.BigToHash(v))
		case common.Address:
			topics = append(topics, common.BytesToHash(v.Bytes()))
		default:
			return fmt.Errorf("%s: unsupported indexed %T", event, v)
		}
	}
	packed, err := ev.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return err
	}

	receipt := c.receipts[tx.Hash()]
	receipt.Logs = append(receipt.Logs, &types.Log{
		Address: address,
		Topics:  topics,
		Data:    packed,
		TxHash:  tx.Hash(),
		Index:   uint(len(receipt.Logs)),
	})
	return nil
}

// Balance returns holder's token balance
func (c *fakeChain) Balance(token, holder common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.balances[token][holder]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Confirmations returns who confirmed the wallet transaction id
func (c *fakeChain) Confirmations(wallet common.Address, id uint64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if call, ok := c.pending[wallet][id]; ok {
		return len(call.confirmedBy)
	}
	return 0
}

func (c *fakeChain) addBalance(token, holder common.Address, delta *big.Int) {
	if c.balances[token] == nil {
		c.balances[token] = make(map[common.Address]*big.Int)
	}
	current, ok := c.balances[token][holder]
	if !ok {
		current = new(big.Int)
	}
	c.balances[token][holder] = new(big.Int).Add(current, delta)
}

func (c *fakeChain) execute(wallet common.Address, call *pendingCall) error {
	method, err := c.abis[domain.TokenContract].MethodById(call.data[:4])
	if err != nil {
		return err
	}
	args, err := method.Inputs.Unpack(call.data[4:])
	if err != nil {
		return err
	}

	switch method.Name {
	case "mint":
		c.addBalance(call.destination, wallet, args[0].(*big.Int))
	case "transfer":
		amount := args[1].(*big.Int)
		c.addBalance(call.destination, wallet, new(big.Int).Neg(amount))
		c.addBalance(call.destination, args[0].(common.Address), amount)
	}
	return nil
}

// confirm records from's confirmation in tx and executes the call once the
// wallet threshold is reached, like MultiSigWallet.confirmTransaction
func (c *fakeChain) confirm(tx *types.Transaction, wallet common.Address, id uint64, from common.Address) error {
	call, ok := c.pending[wallet][id]
	if !ok {
		return fmt.Errorf("unknown transaction %d", id)
	}
	if !slices.Contains(c.members[wallet], from) {
		return fmt.Errorf("%s is not a wallet owner", from.Hex())
	}
	if call.confirmedBy[from] {
		return fmt.Errorf("transaction %d already confirmed by %s", id, from.Hex())
	}
	call.confirmedBy[from] = true
	if err := c.emit(tx, domain.MultiSigWalletContract, wallet, "Confirmation", from, new(big.Int).SetUint64(id)); err != nil {
		return err
	}

	if call.executed || len(call.confirmedBy) < c.required[wallet] {
		return nil
	}
	if err := c.execute(wallet, call); err != nil {
		return err
	}
	call.executed = true
	return c.emit(tx, domain.MultiSigWalletContract, wallet, domain.EventExecution, new(big.Int).SetUint64(id+c.executionOffset))
}

// fakeProvider hands out factories backed by the fake chain
type fakeProvider struct {
	chain *fakeChain
}

func (p *fakeProvider) Factory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	switch name {
	case domain.MultiSigWalletFactoryContract, domain.MultiSigWalletContract, domain.TokenContract:
		return &fakeFactory{chain: p.chain, name: name}, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownContract, name)
}

type fakeFactory struct {
	chain *fakeChain
	name  string
}

func (f *fakeFactory) Name() string  { return f.name }
func (f *fakeFactory) ABI() *abi.ABI { return f.chain.abis[f.name] }
func (f *fakeFactory) Attach(address common.Address) usecase.Contract {
	return &fakeContract{chain: f.chain, name: f.name, address: address}
}

func (f *fakeFactory) Deploy(ctx context.Context, from *models.Account, args ...any) (usecase.Contract, *types.Transaction, error) {
	c := f.chain
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deploys[f.name]++
	address := c.newAddress()
	if f.name == domain.TokenContract {
		c.owners[address] = args[0].(common.Address)
	}
	return &fakeContract{chain: c, name: f.name, address: address}, c.newTx(nil), nil
}

type fakeContract struct {
	chain   *fakeChain
	name    string
	address common.Address
}

func (f *fakeContract) Name() string            { return f.name }
func (f *fakeContract) Address() common.Address { return f.address }
func (f *fakeContract) ABI() *abi.ABI           { return f.chain.abis[f.name] }

func (f *fakeContract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	c := f.chain
	switch method {
	case "getMembers":
		c.mu.Lock()
		defer c.mu.Unlock()
		return []any{c.members[f.address]}, nil
	case "getOwner":
		c.mu.Lock()
		defer c.mu.Unlock()
		return []any{c.owners[f.address]}, nil
	case "balanceOf":
		return []any{c.Balance(f.address, args[0].(common.Address))}, nil
	}
	return nil, fmt.Errorf("%s.%s: not supported", f.name, method)
}

func (f *fakeContract) Transact(ctx context.Context, from *models.Account, method string, args ...any) (*types.Transaction, error) {
	c := f.chain
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.failTransact[method]; err != nil {
		return nil, err
	}

	tx := c.newTx(&f.address)
	switch method {
	case "create":
		owners := args[2].([]common.Address)
		required := args[3].(*big.Int)
		if required.Sign() <= 0 || required.Cmp(big.NewInt(int64(len(owners)))) > 0 {
			return nil, fmt.Errorf("invalid requirement %s for %d owners", required, len(owners))
		}
		wallet := c.newAddress()
		c.members[wallet] = owners
		c.required[wallet] = int(required.Int64())
		if err := c.emit(tx, domain.MultiSigWalletFactoryContract, f.address, domain.EventContractInstantiation, from.Address, wallet); err != nil {
			return nil, err
		}
	case "submitTransaction":
		id := c.nextID[f.address]
		c.nextID[f.address]++
		if c.pending[f.address] == nil {
			c.pending[f.address] = make(map[uint64]*pendingCall)
		}
		c.pending[f.address][id] = &pendingCall{
			destination: args[2].(common.Address),
			data:        args[4].([]byte),
			confirmedBy: make(map[common.Address]bool),
		}
		if err := c.emit(tx, domain.MultiSigWalletContract, f.address, domain.EventSubmission, new(big.Int).SetUint64(id)); err != nil {
			return nil, err
		}
		if err := c.confirm(tx, f.address, id, from.Address); err != nil {
			return nil, err
		}
	case "confirmTransaction":
		if err := c.confirm(tx, f.address, args[0].(*big.Int).Uint64(), from.Address); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s.%s: not supported", f.name, method)
	}
	return tx, nil
}

// fakeWaiter returns the receipts the fake chain recorded
type fakeWaiter struct {
	chain *fakeChain
}

func (w fakeWaiter) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.chain.mu.Lock()
	defer w.chain.mu.Unlock()
	if receipt, ok := w.chain.receipts[tx.Hash()]; ok {
		return receipt, nil
	}
	return nil, fmt.Errorf("transaction %s not found", tx.Hash().Hex())
}

// newDeploySteps builds the steps over the fake chain with the receipt-reading
// event extractor
func newDeploySteps(chain *fakeChain) *usecase.DeploySteps {
	waiter := fakeWaiter{chain: chain}
	return usecase.NewDeploySteps(&fakeProvider{chain: chain}, blockchain.NewEventExtractor(waiter), waiter, logging.Discard())
}

// recordingSink collects progress messages
type recordingSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, message)
}

func (s *recordingSink) Error(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, message)
}

// testKeys generates n hex private keys
func testKeys(t *testing.T, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		keys[i] = "0x" + hex.EncodeToString(crypto.FromECDSA(key))
	}
	return keys
}

// testConfig returns a devnet configuration writing into a temp dir
func testConfig(t *testing.T) *config.RuntimeConfig {
	networks := config.DefaultNetworks()
	network := networks[config.BosagoraDevnet]
	return &config.RuntimeConfig{
		ProjectRoot:           t.TempDir(),
		DeploymentsFile:       filepath.Join(t.TempDir(), "deploy", "deployed_contracts.json"),
		NetworkName:           config.BosagoraDevnet,
		Network:               &network,
		Networks:              networks,
		PrivateKeys:           testKeys(t, models.AccountCount),
		RequiredConfirmations: domain.DefaultRequiredConfirmations,
	}
}
