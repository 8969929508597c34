package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rpggio/portfolio/internal/domain/project"
)

// StatusFilter selects projects by status. StatusAll matches every project.
type StatusFilter string

const StatusAll StatusFilter = "ALL"

// Matches reports whether a project with status s passes the filter.
func (f StatusFilter) Matches(s project.Status) bool {
	return f == StatusAll || f == "" || project.Status(f) == s
}

// ParseStatusFilter accepts ALL or a project status, case-insensitively.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == string(StatusAll) {
		return StatusAll, nil
	}
	if project.Status(s).Valid() {
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidState, s)
}

// SortKey names the project field a view is ordered by.
type SortKey string

const (
	SortCreatedAt SortKey = "createdAt"
	SortName      SortKey = "name"
	SortOwner     SortKey = "owner"
	SortBudget    SortKey = "budget"
	SortSpent     SortKey = "spent"
	SortStatus    SortKey = "status"
)

// SortKeys returns every supported sort key.
func SortKeys() []SortKey {
	return []SortKey{SortCreatedAt, SortName, SortOwner, SortBudget, SortSpent, SortStatus}
}

// ParseSortKey accepts one of SortKeys.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortCreatedAt, nil
	}
	for _, k := range SortKeys() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidState, s)
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc or desc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Desc):
		return Desc, nil
	case string(Asc):
		return Asc, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidState, s)
}

func (d Direction) sign() int {
	if d == Desc {
		return -1
	}
	return 1
}

// State is everything a caller controls about a view.
// Page is 1-based and is clamped when the view is computed.
type State struct {
	Query   string       `json:"query"`
	Status  StatusFilter `json:"status"`
	SortKey SortKey      `json:"sortKey"`
	SortDir Direction    `json:"sortDir"`
	Page    int          `json:"page"`
}

// DefaultState shows every project, newest first.
func DefaultState() State {
	return State{Status: StatusAll, SortKey: SortCreatedAt, SortDir: Desc, Page: 1}
}

// WithQuery changes the search text and returns to the first page.
func (s State) WithQuery(q string) State {
	s.Query = q
	s.Page = 1
	return s
}

// WithStatus changes the status filter and returns to the first page.
func (s State) WithStatus(f StatusFilter) State {
	s.Status = f
	s.Page = 1
	return s
}

// WithSort changes the ordering and returns to the first page.
func (s State) WithSort(key SortKey, dir Direction) State {
	s.SortKey = key
	s.SortDir = dir
	s.Page = 1
	return s
}

// WithPage moves to page n. The index is clamped when the view is computed.
func (s State) WithPage(n int) State {
	s.Page = n
	return s
}

func (s State) normalized() State {
	def := DefaultState()
	if s.Status == "" {
		s.Status = def.Status
	}
	if s.SortKey == "" {
		s.SortKey = def.SortKey
	}
	if s.SortDir == "" {
		s.SortDir = def.SortDir
	}
	return s
}

// ParseState decodes q, status, sort, dir and page query parameters.
// Missing parameters take their DefaultState values.
func ParseState(values url.Values) (State, error) {
	state := DefaultState()
	state.Query = values.Get("q")

	var err error
	if state.Status, err = ParseStatusFilter(values.Get("status")); err != nil {
		return State{}, err
	}
	if state.SortKey, err = ParseSortKey(values.Get("sort")); err != nil {
		return State{}, err
	}
	if state.SortDir, err = ParseDirection(values.Get("dir")); err != nil {
		return State{}, err
	}
	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return State{}, fmt.Errorf("%w: page %q is not an integer", ErrInvalidState, raw)
		}
		state.Page = page
	}
	return state, nil
}

// Values encodes the state as query parameters understood by ParseState.
func (s State) Values() url.Values {
	s = s.normalized()
	values := url.Values{}
	if s.Query != "" {
		values.Set("q", s.Query)
	}
	values.Set("status", string(s.Status))
	values.Set("sort", string(s.SortKey))
	values.Set("dir", string(s.SortDir))
	values.Set("page", strconv.Itoa(s.Page))
	return values
}
