package cli

import (
	"github.com/bosagora/sidechain-deployer/internal/cli/render"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contracts recorded in the deployments file",
		Long: `List the contract addresses recorded in the deployments file for the
selected network.

With --check every address is looked up on chain and flagged when no code is
deployed there.`,
		Example: `  # List recorded contracts
  scdeploy list

  # Verify the recorded addresses hold code on testnet
  scdeploy list --check -n bosagora_testnet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Check: check,
			})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check that code exists at every recorded address")

	return cmd
}
