package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
)

// FileRepository stores the contract name -> address map in a json file
type FileRepository struct {
	path string
	mu   sync.RWMutex
}

// NewFileRepository creates a repository backed by cfg.DeploymentsFile
func NewFileRepository(cfg *config.RuntimeConfig) *FileRepository {
	return NewFileRepositoryAt(cfg.DeploymentsFile)
}

// NewFileRepositoryAt creates a repository backed by path
func NewFileRepositoryAt(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Path returns the file location
func (r *FileRepository) Path() string {
	return r.path
}

// Exists reports whether the file is present
func (r *FileRepository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Load reads the persisted map
func (r *FileRepository) Load(ctx context.Context) (map[string]common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, r.path)
		}
		return nil, err
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedDeployments, r.path, err)
	}

	addresses := make(map[string]common.Address, len(raw))
	for name, value := range raw {
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%w: %s: invalid address %q for %s", domain.ErrMalformedDeployments, r.path, value, name)
		}
		addresses[name] = common.HexToAddress(value)
	}
	return addresses, nil
}

// Save replaces the file content with addresses
func (r *FileRepository) Save(ctx context.Context, addresses map[string]common.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw := make(map[string]string, len(addresses))
	for name, address := range addresses {
		raw[name] = address.Hex()
	}

	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(r.path), err)
	}

	// Write to temp file first
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, r.path)
}

// Ensure the repository implements the interface
var _ usecase.DeploymentStore = (*FileRepository)(nil)
