package dashboard

import (
	"cmp"
	"math"
	"slices"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/samber/lo"
)

// TopBudgetLimit caps the number of bars in the top budgets chart.
const TopBudgetLimit = 6

// KPIs are the scalar metrics shown above the table.
type KPIs struct {
	TotalBudget float64 `json:"totalBudget"`
	TotalSpent  float64 `json:"totalSpent"`
	ActiveCount int     `json:"activeCount"`
	BurnRate    int     `json:"burnRate"`
}

// StatusCount is one slice of the status breakdown chart.
type StatusCount struct {
	Status project.Status `json:"status"`
	Count  int            `json:"count"`
}

// BudgetBar is one paired bar of the top budgets chart.
type BudgetBar struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
}

// Charts holds the chart datasets.
type Charts struct {
	StatusBreakdown []StatusCount `json:"statusBreakdown"`
	TopBudgets      []BudgetBar   `json:"topBudgets"`
}

// Summary is everything derived by aggregation.
type Summary struct {
	KPIs   KPIs   `json:"kpis"`
	Charts Charts `json:"charts"`
}

// Aggregate computes KPIs and charts from records. Callers pass the filtered
// and sorted collection, never a single page.
func Aggregate(records []project.Project) Summary {
	totalBudget := lo.SumBy(records, func(p project.Project) float64 { return p.Budget })
	totalSpent := lo.SumBy(records, func(p project.Project) float64 { return p.Spent })

	return Summary{
		KPIs: KPIs{
			TotalBudget: totalBudget,
			TotalSpent:  totalSpent,
			ActiveCount: lo.CountBy(records, func(p project.Project) bool { return p.Status == project.StatusActive }),
			BurnRate:    BurnRate(totalSpent, totalBudget),
		},
		Charts: Charts{
			StatusBreakdown: StatusBreakdown(records),
			TopBudgets:      TopBudgets(records, TopBudgetLimit),
		},
	}
}

// BurnRate is spent as a whole percentage of budget, rounded half away from
// zero. It is 0 when there is no positive budget.
func BurnRate(spent, budget float64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Round(spent / budget * 100))
}

// StatusBreakdown counts projects per status. All statuses are present, in
// project.Statuses order, even when their count is zero.
func StatusBreakdown(records []project.Project) []StatusCount {
	counts := lo.CountValuesBy(records, func(p project.Project) project.Status { return p.Status })
	return lo.Map(project.Statuses(), func(s project.Status, _ int) StatusCount {
		return StatusCount{Status: s, Count: counts[s]}
	})
}

// TopBudgets returns up to limit projects with the largest budgets. Ties keep
// their input order; the current sort key has no influence.
func TopBudgets(records []project.Project, limit int) []BudgetBar {
	ranked := slices.Clone(records)
	slices.SortStableFunc(ranked, func(a, b project.Project) int {
		return cmp.Compare(b.Budget, a.Budget)
	})
	if len(ranked) > limit {
		ranked = ranked[:max(limit, 0)]
	}
	return lo.Map(ranked, func(p project.Project, _ int) BudgetBar {
		return BudgetBar{Name: p.Name, Budget: p.Budget, Spent: p.Spent}
	})
}
