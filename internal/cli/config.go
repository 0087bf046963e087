package cli

import (
	"github.com/bosagora/sidechain-deployer/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration after merging flags, SCDEPLOY_* environment
variables, scdeploy.toml and the built-in defaults.

Private keys are never printed; only the address each key derives is shown.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
