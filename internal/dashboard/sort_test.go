package dashboard

import (
	"testing"

	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestSort_Keys(t *testing.T) {
	records := sampleProjects()

	tests := []struct {
		key  SortKey
		dir  Direction
		want []string
	}{
		{SortBudget, Asc, []string{"4", "5", "6", "1", "7", "2", "3"}},
		{SortBudget, Desc, []string{"3", "2", "7", "1", "6", "5", "4"}},
		{SortSpent, Asc, []string{"4", "5", "1", "6", "2", "7", "3"}},
		{SortCreatedAt, Asc, []string{"4", "6", "3", "1", "7", "2", "5"}},
		{SortCreatedAt, Desc, []string{"5", "2", "7", "1", "3", "6", "4"}},
		{SortName, Asc, []string{"6", "3", "2", "4", "7", "5", "1"}},
		{SortOwner, Asc, []string{"2", "7", "6", "1", "5", "3", "4"}},
		{SortStatus, Asc, []string{"1", "2", "5", "7", "4", "6", "3"}},
		{SortStatus, Desc, []string{"3", "4", "6", "1", "2", "5", "7"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key)+"_"+string(tt.dir), func(t *testing.T) {
			require.Equal(t, tt.want, ids(Sort(records, tt.key, tt.dir)))
		})
	}
}

func TestSort_TextUsesCollation(t *testing.T) {
	records := []project.Project{
		proj("1", "banana", "x", project.StatusActive, 0, 0, "2024-01-01"),
		proj("2", "Apple", "x", project.StatusActive, 0, 0, "2024-01-01"),
		proj("3", "cherry", "x", project.StatusActive, 0, 0, "2024-01-01"),
	}
	require.Equal(t, []string{"2", "1", "3"}, ids(Sort(records, SortName, Asc)))
}

func TestSort_MissingValues(t *testing.T) {
	records := []project.Project{
		proj("1", "Beta", "x", project.StatusActive, 0, 0, "2024-01-02"),
		proj("2", "", "x", project.StatusActive, 0, 0, ""),
		proj("3", "Alpha", "x", project.StatusActive, 0, 0, "2024-01-01"),
	}

	require.Equal(t, []string{"2", "3", "1"}, ids(Sort(records, SortName, Asc)))
	require.Equal(t, []string{"1", "3", "2"}, ids(Sort(records, SortName, Desc)))
	require.Equal(t, []string{"2", "3", "1"}, ids(Sort(records, SortCreatedAt, Asc)))
	require.Equal(t, []string{"1", "3", "2"}, ids(Sort(records, SortCreatedAt, Desc)))
}

func TestSort_StableInBothDirections(t *testing.T) {
	records := []project.Project{
		proj("3", "C", "x", project.StatusActive, 200, 0, "2024-01-01"),
		proj("1", "A", "x", project.StatusActive, 100, 0, "2024-01-01"),
		proj("7", "G", "x", project.StatusActive, 200, 0, "2024-01-01"),
		proj("9", "I", "x", project.StatusActive, 300, 0, "2024-01-01"),
	}

	require.Equal(t, []string{"9", "3", "7", "1"}, ids(Sort(records, SortBudget, Desc)))
	require.Equal(t, []string{"1", "3", "7", "9"}, ids(Sort(records, SortBudget, Asc)))
	require.Equal(t, []string{"3", "1", "7", "9"}, ids(Sort(records, SortCreatedAt, Asc)))
	require.Equal(t, []string{"3", "1", "7", "9"}, ids(Sort(records, SortCreatedAt, Desc)))
}

func TestSort_Permutation(t *testing.T) {
	records := sampleProjects()
	for _, key := range SortKeys() {
		for _, dir := range []Direction{Asc, Desc} {
			sorted := Sort(records, key, dir)
			require.ElementsMatch(t, records, sorted, "key=%s dir=%s", key, dir)
		}
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := sampleProjects()
	before := ids(records)
	_ = Sort(records, SortBudget, Desc)
	require.Equal(t, before, ids(records))
}

func TestSort_Empty(t *testing.T) {
	got := Sort(nil, SortName, Asc)
	require.NotNil(t, got)
	require.Empty(t, got)
}
