package config

// DeployFileConfig represents the full scdeploy.toml configuration file
type DeployFileConfig struct {
	Network               string             `toml:"network,omitempty"`
	DeploymentsFile       string             `toml:"deployments_file,omitempty"`
	ArtifactsDir          string             `toml:"artifacts_dir,omitempty"`
	RequiredConfirmations int                `toml:"required_confirmations,omitempty"`
	Accounts              AccountsConfig     `toml:"accounts"`
	Networks              map[string]Network `toml:"networks"`
}

// AccountsConfig represents the [accounts] section of scdeploy.toml
type AccountsConfig struct {
	// Keys are hex private keys in role order. Values may reference
	// environment variables as ${NAME}.
	Keys []string `toml:"keys"`
}
