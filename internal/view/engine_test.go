package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

func member(id, name, group, lineName string, history ...domain.SeasonalStatus) domain.Member {
	return domain.Member{ID: id, Name: name, Group: group, LineName: lineName, SeasonalHistory: history}
}

func names(members []domain.Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func TestDeriveFiltering(t *testing.T) {
	roster := []domain.Member{
		member("1", "Test", "A", ""),
		member("2", "Other", "B", "line-test"),
		member("3", "Third", "B", ""),
	}

	t.Run("empty query with group ALL includes everything", func(t *testing.T) {
		result := Derive(roster, Query{Search: "", Group: GroupAll})
		assert.Len(t, result, 3)
	})

	t.Run("search is case-insensitive over name", func(t *testing.T) {
		result := Derive(roster, Query{Search: "tEsT"})
		assert.ElementsMatch(t, []string{"Test", "Other"}, names(result))
	})

	t.Run("search matches line contact name too", func(t *testing.T) {
		result := Derive(roster, Query{Search: "line"})
		require.Len(t, result, 1)
		assert.Equal(t, "Other", result[0].Name)
	})

	t.Run("group filter is exact", func(t *testing.T) {
		result := Derive(roster, Query{Group: "B"})
		assert.ElementsMatch(t, []string{"Other", "Third"}, names(result))
	})

	t.Run("search and group filter combine", func(t *testing.T) {
		result := Derive(roster, Query{Search: "test", Group: "B"})
		require.Len(t, result, 1)
		assert.Equal(t, "Other", result[0].Name)
	})
}

func TestDeriveSorting(t *testing.T) {
	roster := []domain.Member{
		member("1", "Delta", "B", "dd",
			domain.SeasonalStatus{Season: "S20", Status: domain.StatusCurrentDominion}),
		member("2", "Alpha", "C", "aa",
			domain.SeasonalStatus{Season: "S20", Status: domain.StatusEmpty}),
		member("3", "Charlie", "A", "cc",
			domain.SeasonalStatus{Season: "S20", Status: domain.StatusReceived}),
	}

	t.Run("default sorts by group ascending", func(t *testing.T) {
		result := Derive(roster, Query{})
		assert.Equal(t, []string{"Charlie", "Delta", "Alpha"}, names(result))
	})

	t.Run("descending flips the primary key", func(t *testing.T) {
		result := Derive(roster, Query{SortKey: SortKeyGroup, SortDir: SortDesc})
		assert.Equal(t, []string{"Alpha", "Delta", "Charlie"}, names(result))
	})

	t.Run("any other key sorts by that season's status", func(t *testing.T) {
		result := Derive(roster, Query{SortKey: "S20"})
		// lexicographic over the status literals
		statuses := []string{
			result[0].SeasonStatus("S20"),
			result[1].SeasonStatus("S20"),
			result[2].SeasonStatus("S20"),
		}
		assert.True(t, statuses[0] <= statuses[1] && statuses[1] <= statuses[2])
	})

	t.Run("missing season entry compares as empty string without panicking", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Derive(roster, Query{SortKey: "S99"})
		})
	})

	t.Run("line contact sort", func(t *testing.T) {
		result := Derive(roster, Query{SortKey: SortKeyLineName})
		assert.Equal(t, []string{"Alpha", "Charlie", "Delta"}, names(result))
	})
}

func TestDeriveTieBreak(t *testing.T) {
	// all share the primary key; tie-break must be ascending name in both
	// directions
	roster := []domain.Member{
		member("1", "Bravo", "A", ""),
		member("2", "Alpha", "A", ""),
		member("3", "Charlie", "A", ""),
	}

	asc := Derive(roster, Query{SortKey: SortKeyGroup, SortDir: SortAsc})
	desc := Derive(roster, Query{SortKey: SortKeyGroup, SortDir: SortDesc})

	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names(asc))
	assert.Equal(t, names(asc), names(desc))
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	roster := []domain.Member{
		member("1", "Bravo", "B", ""),
		member("2", "Alpha", "A", ""),
	}
	_ = Derive(roster, Query{SortKey: SortKeyName})
	assert.Equal(t, "Bravo", roster[0].Name)
}
