package dashboard

import (
	"net/url"
	"testing"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestParseState_Defaults(t *testing.T) {
	state, err := ParseState(url.Values{})
	require.NoError(t, err)
	require.Equal(t, DefaultState(), state)
}

func TestParseState(t *testing.T) {
	values := url.Values{
		"q":      {"chen"},
		"status": {"paused"},
		"sort":   {"budget"},
		"dir":    {"ASC"},
		"page":   {"3"},
	}
	state, err := ParseState(values)
	require.NoError(t, err)
	require.Equal(t, State{
		Query:   "chen",
		Status:  StatusFilter(project.StatusPaused),
		SortKey: SortBudget,
		SortDir: Asc,
		Page:    3,
	}, state)

	roundTrip, err := ParseState(state.Values())
	require.NoError(t, err)
	require.Equal(t, state, roundTrip)
}

func TestParseState_Invalid(t *testing.T) {
	for _, values := range []url.Values{
		{"status": {"archived"}},
		{"sort": {"tick"}},
		{"dir": {"sideways"}},
		{"page": {"two"}},
	} {
		_, err := ParseState(values)
		require.ErrorIs(t, err, ErrInvalidState, "%v", values)
	}
}

func TestState_TransitionsResetPage(t *testing.T) {
	s := DefaultState().WithPage(4)
	require.Equal(t, 4, s.Page)
	require.Equal(t, 1, s.WithQuery("x").Page)
	require.Equal(t, 1, s.WithStatus(StatusFilter(project.StatusDone)).Page)
	require.Equal(t, 1, s.WithSort(SortOwner, Asc).Page)
}

func TestStatusFilter_Matches(t *testing.T) {
	require.True(t, StatusAll.Matches(project.StatusDone))
	require.True(t, StatusFilter(project.StatusDone).Matches(project.StatusDone))
	require.False(t, StatusFilter(project.StatusDone).Matches(project.StatusActive))
}
