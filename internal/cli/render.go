package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rpggio/portfolio/internal/dashboard"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderView(w io.Writer, format string, view dashboard.View) error {
	if format == OutputJSON {
		return writeJSON(w, view)
	}

	if view.Error != "" {
		_, _ = fmt.Fprintf(w, "Record store unavailable: %s\n\n", view.Error)
	}

	kpis := view.Summary.KPIs
	renderTable(w, "KPIs",
		table.Row{"Total budget", "Total spent", "Active", "Burn rate"},
		[]table.Row{{
			dashboard.FormatAmount(kpis.TotalBudget),
			dashboard.FormatAmount(kpis.TotalSpent),
			kpis.ActiveCount,
			fmt.Sprintf("%d%%", kpis.BurnRate),
		}})

	breakdown := make([]table.Row, 0, len(view.Summary.Charts.StatusBreakdown))
	for _, sc := range view.Summary.Charts.StatusBreakdown {
		breakdown = append(breakdown, table.Row{sc.Status, sc.Count, strings.Repeat("#", sc.Count)})
	}
	renderTable(w, "Status", table.Row{"Status", "Count", ""}, breakdown)

	if bars := view.Summary.Charts.TopBudgets; len(bars) > 0 {
		rows := make([]table.Row, 0, len(bars))
		for _, b := range bars {
			rows = append(rows, table.Row{b.Name, dashboard.FormatAmount(b.Budget), dashboard.FormatAmount(b.Spent)})
		}
		renderTable(w, "Top budgets", table.Row{"Name", "Budget", "Spent"}, rows)
	}

	_, _ = fmt.Fprintf(w, "%d of %d projects match (page %d of %d)\n",
		view.Matched, view.Total, view.Page.Index, view.Page.TotalPages)
	if len(view.Page.Items) == 0 {
		_, _ = fmt.Fprintln(w, "(no projects)")
		return nil
	}

	rows := make([]table.Row, 0, len(view.Page.Items))
	for _, p := range view.Page.Items {
		rows = append(rows, table.Row{
			p.ID, p.Name, p.Owner, p.Status,
			dashboard.FormatAmount(p.Budget), dashboard.FormatAmount(p.Spent), p.CreatedAt,
		})
	}
	renderTable(w, "", table.Row{"ID", "Name", "Owner", "Status", "Budget", "Spent", "Created"}, rows)
	return nil
}

func renderTable(w io.Writer, title string, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Budget", Align: text.AlignRight},
		{Name: "Spent", Align: text.AlignRight},
		{Name: "Total budget", Align: text.AlignRight},
		{Name: "Total spent", Align: text.AlignRight},
	})
	t.Render()
}
