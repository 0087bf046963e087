package artifacts

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:embed abi/*.json
var embeddedABIs embed.FS

// Backend supplies a connected contract backend and the chain ID to sign for
type Backend interface {
	Backend(ctx context.Context) (bind.ContractBackend, *big.Int, error)
}

// artifact is the subset of a hardhat artifact file we read
type artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// Provider resolves contract interfaces from compiled hardhat artifacts,
// falling back to the embedded ABIs of the contracts this tool drives.
type Provider struct {
	dir       string
	backend   Backend
	log       *slog.Logger
	factories map[string]*Factory
}

// NewProvider creates a provider reading artifacts below cfg.ArtifactsDir
func NewProvider(cfg *config.RuntimeConfig, backend Backend, log *slog.Logger) *Provider {
	return &Provider{
		dir:       cfg.ArtifactsDir,
		backend:   backend,
		log:       log.With("component", "Artifacts"),
		factories: make(map[string]*Factory),
	}
}

// Factory returns the contract interface registered under name
func (p *Provider) Factory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	if factory, ok := p.factories[name]; ok {
		return factory, nil
	}

	art, err := p.load(name)
	if err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(bytes.NewReader(art.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", name, err)
	}

	var bytecode []byte
	if code := strings.TrimSpace(art.Bytecode); code != "" && code != "0x" {
		bytecode, err = hexutil.Decode(code)
		if err != nil {
			return nil, fmt.Errorf("failed to decode bytecode of %s: %w", name, err)
		}
	}

	factory := &Factory{
		name:     name,
		abi:      parsed,
		bytecode: bytecode,
		backend:  p.backend,
	}
	p.factories[name] = factory
	return factory, nil
}

func (p *Provider) load(name string) (*artifact, error) {
	if p.dir != "" {
		path, err := p.find(name)
		if err != nil {
			return nil, err
		}
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
			}
			var art artifact
			if err := json.Unmarshal(data, &art); err != nil {
				return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
			}
			p.log.Debug("Loaded artifact", "contract", name, "path", path)
			return &art, nil
		}
	}

	data, err := embeddedABIs.ReadFile("abi/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownContract, name)
	}
	p.log.Debug("Using embedded ABI", "contract", name)
	return &artifact{ContractName: name, ABI: data}, nil
}

// find returns the first <name>.json below the artifacts directory, or ""
func (p *Provider) find(name string) (string, error) {
	target := name + ".json"
	var found string
	err := filepath.WalkDir(p.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != target {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to scan artifacts: %w", err)
	}
	return found, nil
}

// Factory deploys or attaches one contract interface
type Factory struct {
	name     string
	abi      abi.ABI
	bytecode []byte
	backend  Backend
}

// Name returns the contract interface name
func (f *Factory) Name() string { return f.name }

// ABI returns the parsed contract ABI
func (f *Factory) ABI() *abi.ABI { return &f.abi }

// Deploy sends a creation transaction signed by from. The returned contract is
// usable once the transaction is mined.
func (f *Factory) Deploy(ctx context.Context, from *models.Account, args ...any) (usecase.Contract, *types.Transaction, error) {
	if len(f.bytecode) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNoBytecode, f.name)
	}

	backend, chainID, err := f.backend.Backend(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts, err := transactOpts(ctx, from, chainID)
	if err != nil {
		return nil, nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, f.abi, f.bytecode, backend, args...)
	if err != nil {
		return nil, nil, err
	}
	return f.Attach(address), tx, nil
}

// Attach returns a handle on an existing deployment
func (f *Factory) Attach(address common.Address) usecase.Contract {
	return &Contract{
		name:    f.name,
		address: address,
		abi:     f.abi,
		backend: f.backend,
	}
}

var (
	_ usecase.ContractProvider = (*Provider)(nil)
	_ usecase.ContractFactory  = (*Factory)(nil)
)
