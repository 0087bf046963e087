package cli

import (
	"github.com/bosagora/sidechain-deployer/internal/cli/render"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Show the configured accounts and their balances",
		Long: `Show the accounts derived from the configured private keys, in the roles
the deployment assigns them: deployer, owner, fee account and the token owners
that submit and confirm wallet transactions.

Native and ACC balances are read from the selected network unless --offline
is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowAccounts.Run(cmd.Context(), usecase.ShowAccountsParams{
				Offline: offline,
			})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewAccountsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Do not query balances")

	return cmd
}
