package dashboard

import (
	"testing"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SamplePortfolio(t *testing.T) {
	summary := Aggregate(sampleProjects())

	require.Equal(t, KPIs{TotalBudget: 850, TotalSpent: 500, ActiveCount: 4, BurnRate: 59}, summary.KPIs)
	require.Equal(t, []StatusCount{
		{Status: project.StatusActive, Count: 4},
		{Status: project.StatusPaused, Count: 1},
		{Status: project.StatusDone, Count: 2},
	}, summary.Charts.StatusBreakdown)
	require.Equal(t, []BudgetBar{
		{Name: "Data Lake", Budget: 300, Spent: 150},
		{Name: "Mobile App", Budget: 200, Spent: 100},
		{Name: "Onboarding Portal", Budget: 125, Spent: 100},
		{Name: "Website Revamp", Budget: 100, Spent: 50},
		{Name: "CRM Migration", Budget: 75, Spent: 75},
		{Name: "Security Audit", Budget: 50, Spent: 25},
	}, summary.Charts.TopBudgets)
}

func TestAggregate_Empty(t *testing.T) {
	summary := Aggregate(nil)

	require.Equal(t, KPIs{}, summary.KPIs)
	require.Equal(t, []StatusCount{
		{Status: project.StatusActive},
		{Status: project.StatusPaused},
		{Status: project.StatusDone},
	}, summary.Charts.StatusBreakdown)
	require.NotNil(t, summary.Charts.TopBudgets)
	require.Empty(t, summary.Charts.TopBudgets)
}

func TestAggregate_IgnoresInputOrder(t *testing.T) {
	records := sampleProjects()
	for _, key := range SortKeys() {
		sorted := Sort(records, key, Asc)
		require.Equal(t, Aggregate(records), Aggregate(sorted), "key=%s", key)
	}
}

func TestTopBudgets_TiesKeepInputOrder(t *testing.T) {
	records := []project.Project{
		proj("a", "A", "x", project.StatusActive, 10, 0, "2024-01-01"),
		proj("b", "B", "x", project.StatusActive, 20, 0, "2024-01-01"),
		proj("c", "C", "x", project.StatusActive, 20, 0, "2024-01-01"),
		proj("d", "D", "x", project.StatusActive, 5, 0, "2024-01-01"),
	}

	got := TopBudgets(records, 3)
	require.Equal(t, []BudgetBar{{Name: "B", Budget: 20}, {Name: "C", Budget: 20}, {Name: "A", Budget: 10}}, got)
}

func TestTopBudgets_Limit(t *testing.T) {
	require.Len(t, TopBudgets(numbered(10), TopBudgetLimit), TopBudgetLimit)
	require.Len(t, TopBudgets(numbered(3), TopBudgetLimit), 3)
}

func TestBurnRate(t *testing.T) {
	tests := []struct {
		spent, budget float64
		want          int
	}{
		{500, 850, 59},
		{0, 0, 0},
		{100, 0, 0},
		{100, -5, 0},
		{1, 200, 1},  // 0.5 rounds away from zero
		{5, 1000, 1}, // 0.5
		{4, 1000, 0}, // 0.4
		{300, 200, 150},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, BurnRate(tt.spent, tt.budget), "spent=%v budget=%v", tt.spent, tt.budget)
	}
}

func TestStatusBreakdown_TotalsMatchInput(t *testing.T) {
	records := sampleProjects()
	for _, f := range []StatusFilter{StatusAll, StatusFilter(project.StatusActive), StatusFilter(project.StatusPaused)} {
		filtered := Filter(records, "", f)
		total := 0
		for _, c := range StatusBreakdown(filtered) {
			total += c.Count
		}
		require.Equal(t, len(filtered), total)
	}
}
