package render

import (
	"fmt"
	"io"

	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DeploymentsRenderer renders the persisted deployments
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// Render implements Renderer
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	return r.RenderDeploymentList(result)
}

// RenderDeploymentList renders deployments as a table
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "No deployments file at %s\n", getRelativePath(result.DeploymentsFile))
		return nil
	}
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	fmt.Fprintf(r.out, "%s %s\n\n", sectionHeaderStyle.Sprint("DEPLOYMENTS"), faintStyle.Sprintf("(%s)", result.Network))

	checked := result.Deployments[0].Checked
	header := table.Row{"CONTRACT", "ADDRESS"}
	if checked {
		header = append(header, "ON-CHAIN")
	}

	rows := make([]table.Row, 0, len(result.Deployments))
	for _, dep := range result.Deployments {
		row := table.Row{nameStyle.Sprint(dep.Name), addressStyle.Sprint(dep.Address.Hex())}
		if checked {
			row = append(row, checkCell(dep))
		}
		rows = append(rows, row)
	}
	writeTable(r.out, header, rows, "  ")

	fmt.Fprintf(r.out, "\nTotal deployments: %d\n", len(result.Deployments))
	fmt.Fprintln(r.out, faintStyle.Sprintf("📁 %s", getRelativePath(result.DeploymentsFile)))
	return nil
}

func checkCell(dep *models.Deployment) string {
	if dep.HasCode {
		return okStyle.Sprint("✓ code")
	}
	msg := dep.CheckMsg
	if msg == "" {
		msg = "missing"
	}
	return failStyle.Sprintf("✗ %s", msg)
}
