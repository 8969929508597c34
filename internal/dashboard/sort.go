package dashboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rpggio/portfolio/internal/domain/project"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type compareFunc func(a, b project.Project) int

// Sort returns a stably sorted copy of records.
//
// Budget and spent compare numerically, createdAt compares its YYYY-MM-DD text
// byte-wise, and name, owner and status use the root-locale collation. An empty
// text value counts as missing and is less than any present value. Desc negates
// the whole comparison, so missing values come first ascending and last
// descending. Equal keys keep their input order in both directions.
func Sort(records []project.Project, key SortKey, dir Direction) []project.Project {
	out := make([]project.Project, len(records))
	copy(out, records)

	compare := comparatorFor(key)
	sign := dir.sign()
	slices.SortStableFunc(out, func(a, b project.Project) int {
		return sign * compare(a, b)
	})
	return out
}

func comparatorFor(key SortKey) compareFunc {
	switch key {
	case SortBudget:
		return func(a, b project.Project) int { return cmp.Compare(a.Budget, b.Budget) }
	case SortSpent:
		return func(a, b project.Project) int { return cmp.Compare(a.Spent, b.Spent) }
	case SortName:
		text := collatedText()
		return func(a, b project.Project) int { return text(a.Name, b.Name) }
	case SortOwner:
		text := collatedText()
		return func(a, b project.Project) int { return text(a.Owner, b.Owner) }
	case SortStatus:
		text := collatedText()
		return func(a, b project.Project) int { return text(string(a.Status), string(b.Status)) }
	default:
		return func(a, b project.Project) int { return missingFirst(a.CreatedAt, b.CreatedAt, strings.Compare) }
	}
}

// collatedText returns a comparator backed by a fresh collator; collators
// keep internal buffers and must not be shared between goroutines.
func collatedText() func(a, b string) int {
	c := collate.New(language.Und)
	return func(a, b string) int {
		return missingFirst(a, b, c.CompareString)
	}
}

func missingFirst(a, b string, compare func(a, b string) int) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}
	return compare(a, b)
}
