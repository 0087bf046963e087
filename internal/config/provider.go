package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/domain/config"
	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read through viper
	EnvPrefix = "SCDEPLOY"

	// DefaultDeploymentsFile is where deployed addresses are persisted, relative to the project root
	DefaultDeploymentsFile = "deploy/side_chain_devnet/deployed_contracts.json"

	// DefaultArtifactsDir is the hardhat artifacts directory, relative to the project root
	DefaultArtifactsDir = "artifacts"
)

// projectMarkers identify a project root, in order of preference
var projectMarkers = []string{DeployFileName, "hardhat.config.ts", "hardhat.config.js"}

// Provider creates RuntimeConfig for Wire dependency injection. Values set
// through viper (flags, SCDEPLOY_* variables) take precedence over
// scdeploy.toml, which takes precedence over built-in defaults.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	loadEnvFiles(projectRoot)

	configFile := v.GetString("config")
	if configFile == "" {
		configFile = filepath.Join(projectRoot, DeployFileName)
	} else {
		configFile = resolvePath(projectRoot, configFile)
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
	}

	file, err := loadDeployFile(configFile)
	if err != nil {
		return nil, err
	}
	if file == nil {
		configFile = ""
		file = &config.DeployFileConfig{}
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:  projectRoot,
		ConfigFile:   configFile,
		Networks:     mergeNetworks(file),
		Debug:        v.GetBool("debug"),
		Timeout:      v.GetDuration("timeout"),
		PollInterval: v.GetDuration("poll_interval"),
	}

	cfg.NetworkName = lo.CoalesceOrEmpty(v.GetString("network"), file.Network, config.DefaultNetwork)
	if network, ok := cfg.Networks[cfg.NetworkName]; ok {
		cfg.Network = &network
	}

	cfg.DeploymentsFile = resolvePath(projectRoot,
		lo.CoalesceOrEmpty(v.GetString("deployments_file"), file.DeploymentsFile, DefaultDeploymentsFile))
	cfg.ArtifactsDir = resolvePath(projectRoot,
		lo.CoalesceOrEmpty(v.GetString("artifacts_dir"), file.ArtifactsDir, DefaultArtifactsDir))

	cfg.RequiredConfirmations = lo.CoalesceOrEmpty(v.GetInt("required_confirmations"), file.RequiredConfirmations, domain.DefaultRequiredConfirmations)
	if err := domain.CheckRequiredConfirmations(cfg.RequiredConfirmations, models.TokenOwnerCount); err != nil {
		return nil, err
	}

	cfg.PrivateKeys = file.Accounts.Keys
	if raw := v.GetString("private_keys"); raw != "" {
		cfg.PrivateKeys = splitKeys(raw)
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find scdeploy.toml or a
// hardhat config. The current directory is used when none is found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for _, marker := range projectMarkers {
		dir := cwd
		for {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return cwd, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "10m")
	v.SetDefault("poll_interval", "1s")
	v.SetDefault("debug", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		if err != nil {
			panic(err)
		}
	})

	return v
}

func resolvePath(projectRoot, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}

// splitKeys accepts keys separated by commas or whitespace
func splitKeys(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	return lo.Map(fields, func(key string, _ int) string { return strings.TrimSpace(key) })
}
