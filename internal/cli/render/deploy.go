package render

import (
	"fmt"
	"io"
	"time"

	"github.com/bosagora/sidechain-deployer/internal/domain/models"
	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DeployRenderer renders the outcome of a deployment run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// Render implements Renderer
func (r *DeployRenderer) Render(result *usecase.RunDeploymentResult) error {
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s %s\n\n", sectionHeaderStyle.Sprint("STEPS"), faintStyle.Sprintf("(%s)", result.Network))

	rows := make([]table.Row, 0, len(result.Steps))
	for _, step := range result.Steps {
		rows = append(rows, table.Row{step.Name, statusCell(step), faintStyle.Sprint(durationCell(step)), step.Message})
	}
	writeTable(r.out, table.Row{"STEP", "STATUS", "TIME", "DETAIL"}, rows, "  ")

	if len(result.Deployments) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, sectionHeaderStyle.Sprint("CONTRACTS"))
		fmt.Fprintln(r.out)
		contracts := make([]table.Row, 0, len(result.Deployments))
		for _, dep := range result.Deployments {
			contracts = append(contracts, table.Row{nameStyle.Sprint(dep.Name), addressStyle.Sprint(dep.Address.Hex())})
		}
		writeTable(r.out, nil, contracts, "  ")
	}

	fmt.Fprintln(r.out)
	if failed := result.Failed(); len(failed) > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d of %d steps did not complete", len(failed), len(result.Steps))))
	} else {
		fmt.Fprintln(r.out, FormatSuccess("Deployment finished"))
	}
	fmt.Fprintln(r.out, faintStyle.Sprintf("📁 %s", getRelativePath(result.DeploymentsFile)))
	return nil
}

func statusCell(step models.StepResult) string {
	switch step.Status {
	case models.StepSucceeded:
		return okStyle.Sprint("✓ done")
	case models.StepSkipped:
		if step.Err != nil {
			return failStyle.Sprint("⊘ skipped")
		}
		return faintStyle.Sprint("⊘ skipped")
	default:
		return failStyle.Sprint("✗ failed")
	}
}

func durationCell(step models.StepResult) string {
	if step.Duration == 0 {
		return "-"
	}
	return step.Duration.Round(time.Millisecond).String()
}
