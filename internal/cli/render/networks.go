package render

import (
	"fmt"
	"io"

	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render implements Renderer
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	rows := make([]table.Row, 0, len(result.Networks))
	for _, network := range result.Networks {
		name := network.Name
		if network.Active {
			name = activeStyle.Sprint("* " + name)
		} else {
			name = "  " + name
		}

		chainID := faintStyle.Sprint("auto")
		if network.ChainID != 0 {
			chainID = fmt.Sprintf("%d", network.ChainID)
		}

		factory := okStyle.Sprint(network.MultiSigWalletFactory)
		if !network.FactoryValid {
			factory = failStyle.Sprint("✗ not configured")
		}

		rows = append(rows, table.Row{name, chainID, network.RPCURL, factory})
	}
	writeTable(r.out, table.Row{"NETWORK", "CHAIN ID", "RPC", "WALLET FACTORY"}, rows, "")
	return nil
}
