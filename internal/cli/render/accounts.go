package render

import (
	"fmt"
	"io"

	"github.com/bosagora/sidechain-deployer/internal/domain"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// AccountsRenderer renders the deployment accounts
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

// Render implements Renderer
func (r *AccountsRenderer) Render(result *usecase.ShowAccountsResult) error {
	fmt.Fprintf(r.out, "%s %s\n\n", sectionHeaderStyle.Sprint("ACCOUNTS"), faintStyle.Sprintf("(%s)", result.Network))

	header := table.Row{"ROLE", "ADDRESS", "BALANCE"}
	if result.Token != nil {
		header = append(header, domain.TokenContract)
	}

	rows := make([]table.Row, 0, len(result.Accounts))
	for _, entry := range result.Accounts {
		row := table.Row{
			nameStyle.Sprint(entry.Account.Label()),
			addressStyle.Sprint(entry.Account.Address.Hex()),
			amountCell(entry.Balance),
		}
		if result.Token != nil {
			row = append(row, amountCell(entry.TokenBalance))
		}
		rows = append(rows, row)
	}
	writeTable(r.out, header, rows, "  ")
	return nil
}

func amountCell(amount *domain.Amount) string {
	if amount == nil {
		return pendingStyle.Sprint("?")
	}
	return amount.DisplayString(true, 2)
}
