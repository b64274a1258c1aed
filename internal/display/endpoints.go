package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dyike/eodhd-cli/internal/dataflows"
)

// ShowEndpoints renders the endpoint table on the output stream.
func (d *ResultsDisplay) ShowEndpoints(eps []dataflows.Endpoint) error {
	s := newStyles(d.out)

	rows := make([][]string, 0, len(eps))
	for _, ep := range eps {
		rows = append(rows, []string{ep.Group, ep.Name, symbolColumn(ep), ep.Path})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.border).
		Headers("GROUP", "ENDPOINT", "SYMBOL", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.header
			case col == 0:
				return s.group
			default:
				return s.cell
			}
		})

	_, err := fmt.Fprintln(d.out, t.Render())
	return err
}

func symbolColumn(ep dataflows.Endpoint) string {
	desc := ep.Symbol.String()
	if ep.Symbol == dataflows.SymbolOptional {
		desc = fmt.Sprintf("optional (query %s)", ep.SymbolParam)
	}
	if ep.NeedsFunction {
		desc += " + --function"
	}
	return desc
}

// EndpointSummary lists the endpoints per group, one line per group, for
// help text.
func EndpointSummary(eps []dataflows.Endpoint, groups []string) string {
	byGroup := make(map[string][]string, len(groups))
	for _, ep := range eps {
		name := ep.Name
		if ep.NeedsFunction {
			name += " (requires --function)"
		}
		byGroup[ep.Group] = append(byGroup[ep.Group], name)
	}

	width := 0
	for _, g := range groups {
		if len(g) > width {
			width = len(g)
		}
	}

	var sb strings.Builder
	for _, g := range groups {
		names, ok := byGroup[g]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", width+1, g+":", strings.Join(names, ", "))
	}
	return sb.String()
}
