package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/ethereum/go-ethereum/crypto"
)

// ShowConfigResult is the resolved configuration with secrets removed
type ShowConfigResult struct {
	ConfigFile            string           `yaml:"configFile"`
	ProjectRoot           string           `yaml:"projectRoot"`
	Network               string           `yaml:"network"`
	Networks              []config.Network `yaml:"networks"`
	DeploymentsFile       string           `yaml:"deploymentsFile"`
	ArtifactsDir          string           `yaml:"artifactsDir"`
	RequiredConfirmations int              `yaml:"requiredConfirmations"`
	Timeout               string           `yaml:"timeout"`
	PollInterval          string           `yaml:"pollInterval"`
	Debug                 bool             `yaml:"debug"`

	// Keys holds the address derived from each configured key, never the key itself
	Keys []string `yaml:"keys"`
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{config: cfg}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	cfg := uc.config
	result := &ShowConfigResult{
		ConfigFile:            cfg.ConfigFile,
		ProjectRoot:           cfg.ProjectRoot,
		Network:               cfg.NetworkName,
		DeploymentsFile:       cfg.DeploymentsFile,
		ArtifactsDir:          cfg.ArtifactsDir,
		RequiredConfirmations: cfg.RequiredConfirmations,
		Timeout:               cfg.Timeout.String(),
		PollInterval:          cfg.PollInterval.String(),
		Debug:                 cfg.Debug,
	}

	for _, name := range config.NetworkNames(cfg.Networks) {
		result.Networks = append(result.Networks, cfg.Networks[name])
	}

	for i, raw := range cfg.PrivateKeys {
		result.Keys = append(result.Keys, redactKey(i, raw))
	}

	return result, nil
}

func redactKey(position int, raw string) string {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return fmt.Sprintf("#%d <invalid>", position)
	}
	return fmt.Sprintf("#%d %s", position, crypto.PubkeyToAddress(key.PublicKey).Hex())
}
