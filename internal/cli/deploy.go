package cli

import (
	"strings"

	"github.com/bosagora/sidechain-deployer/internal/cli/render"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		steps []string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the wallet and token and distribute the initial supply",
		Long: `Run the deployment steps in order:

  ` + strings.Join(usecase.DefaultStepNames(), "\n  ") + `

Contracts already recorded in the deployments file are not deployed again, and
the token is only minted and distributed in the run that deployed it. Use
--force to redeploy and redistribute.

A step that fails is reported and the remaining steps still run. The
deployments file is written at the end of every run.`,
		Example: `  # Deploy to the default network
  scdeploy deploy

  # Deploy a new wallet factory first
  scdeploy deploy --steps ` + usecase.StepDeployMultiSigWalletFactory + `,` + strings.Join(usecase.DefaultStepNames(), ",") + `

  # Only deploy the token against the recorded wallet
  scdeploy deploy --steps ` + usecase.StepDeployToken + ` --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RunDeployment.Run(cmd.Context(), usecase.RunDeploymentParams{
				Steps: steps,
				Force: force,
			})
			stopProgress(cmd)
			if result != nil {
				if renderErr := render.NewDeployRenderer(cmd.OutOrStdout()).Render(result); renderErr != nil {
					return renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().StringSliceVar(&steps, "steps", nil, "Steps to run, in registration order (default: all but "+usecase.StepDeployMultiSigWalletFactory+")")
	cmd.Flags().BoolVar(&force, "force", false, "Redeploy recorded contracts and rerun token distribution")

	return cmd
}
