package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	headerStyle        = color.New(color.Bold, color.FgHiWhite)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
	nameStyle          = color.New(color.FgGreen, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	faintStyle         = color.New(color.Faint)
	pendingStyle       = color.New(color.FgYellow)
	okStyle            = color.New(color.FgGreen)
	failStyle          = color.New(color.FgRed)
	activeStyle        = color.New(color.FgCyan, color.Bold)
)

// writeTable renders rows as a borderless, left aligned table indented by prefix
func writeTable(out io.Writer, header table.Row, rows []table.Row, prefix string) {
	if len(rows) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Format.Header = text.FormatDefault
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	if header != nil {
		styled := make(table.Row, len(header))
		for i, cell := range header {
			styled[i] = headerStyle.Sprint(cell)
		}
		styled[0] = prefix + styled[0].(string)
		t.AppendHeader(styled)
	}
	for _, row := range rows {
		indented := append(table.Row{}, row...)
		indented[0] = prefix + fmt.Sprint(indented[0])
		t.AppendRow(indented)
	}

	t.Render()
}
