package dashboard

import (
	"math"
	"strconv"
	"strings"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/samber/lo"
)

// Filter keeps the projects matching both the search query and the status
// filter, in their original order.
//
// The query is trimmed and lower-cased, then matched as a plain substring of
// the project's searchable text (see SearchText).
func Filter(records []project.Project, query string, status StatusFilter) []project.Project {
	needle := strings.ToLower(strings.TrimSpace(query))
	return lo.Filter(records, func(p project.Project, _ int) bool {
		if !status.Matches(p.Status) {
			return false
		}
		return needle == "" || strings.Contains(SearchText(p), needle)
	})
}

// SearchText is the lower-cased text a query is matched against: name, owner,
// id, status, budget, spent and createdAt joined by single spaces.
func SearchText(p project.Project) string {
	return strings.ToLower(strings.Join([]string{
		p.Name,
		p.Owner,
		p.ID,
		string(p.Status),
		FormatAmount(p.Budget),
		FormatAmount(p.Spent),
		p.CreatedAt,
	}, " "))
}

// FormatAmount renders an amount in its shortest round-trip form (100, 12.5,
// 0.1). Magnitudes of 1e21 and above or below 1e-6 use exponent notation
// with an unpadded exponent (1e+21, 1.5e-7), the way browsers print numbers.
func FormatAmount(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
