package cli

import (
	"context"
	"fmt"

	"github.com/bosagora/sidechain-deployer/internal/adapters/progress"
	"github.com/bosagora/sidechain-deployer/internal/app"
	"github.com/bosagora/sidechain-deployer/internal/config"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// sinkKey is the context key for the progress sink
	sinkKey contextKey = "sink"
)

// Execute runs the root command. Whatever the command acquired is released
// even when it fails, since cobra skips PersistentPostRun after an error.
func Execute() error {
	rootCmd, release := newRootCmd()
	defer release()
	return rootCmd.Execute()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

// newRootCmd creates the root command and the func releasing the app and
// timeout of the command that ran. release is safe to call more than once.
func newRootCmd() (*cobra.Command, func()) {
	var (
		cancel      context.CancelFunc
		appInstance *app.App
		sink        usecase.ProgressSink
	)
	release := func() {
		if spinner, ok := sink.(*progress.SpinnerProgressReporter); ok {
			spinner.Stop()
		}
		if cancel != nil {
			cancel()
			cancel = nil
		}
		if appInstance != nil {
			appInstance.Close()
			appInstance = nil
		}
	}

	rootCmd := &cobra.Command{
		Use:   "scdeploy",
		Short: "Side chain contract deployment for BOSagora networks",
		Long: `scdeploy deploys the owner MultiSigWallet through the network's wallet
factory, deploys the ACC token owned by that wallet, and mints and distributes
the initial supply through multi-sig submit/confirm.

Deployed addresses are recorded in a JSON file so later runs pick them up.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd.Name()) {
				return nil
			}

			// Set up viper
			v := config.SetupViper("", cmd)

			// Initialize app with DI
			sink = newProgressSink()
			var err error
			appInstance, err = app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, sinkKey, sink)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			release()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., bosagora_devnet, bosagora_testnet)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to scdeploy.toml (defaults to the project root)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall command timeout (default 10m)")
	rootCmd.PersistentFlags().String("deployments-file", "", "File recording deployed addresses")
	rootCmd.PersistentFlags().String("artifacts-dir", "", "Hardhat artifacts directory")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	accountsCmd := NewAccountsCmd()
	accountsCmd.GroupID = "main"
	rootCmd.AddCommand(accountsCmd)

	// Management commands
	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd, release
}

// needsApp reports whether a command runs against the wired application
func needsApp(cmdName string) bool {
	switch cmdName {
	case "version", "help", "completion", "scdeploy":
		return false
	}
	return true
}

// newProgressSink returns a spinner on terminals and a no-op sink otherwise
func newProgressSink() usecase.ProgressSink {
	if color.NoColor {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerProgressReporter()
}

// stopProgress clears a running spinner before results are printed
func stopProgress(cmd *cobra.Command) {
	if spinner, ok := cmd.Context().Value(sinkKey).(*progress.SpinnerProgressReporter); ok {
		spinner.Stop()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
