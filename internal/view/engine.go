package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

// SortDirection orders the primary sort key.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// GroupAll disables group filtering.
const GroupAll = "ALL"

const (
	SortKeyGroup    = "group"
	SortKeyName     = "name"
	SortKeyLineName = "lineName"
)

// Query is the transient view state: search text, group filter and sort
// configuration. A SortKey outside the fixed keys is read as a season label.
type Query struct {
	Search  string
	Group   string
	SortKey string
	SortDir SortDirection
}

// Normalize fills query defaults.
func (q Query) Normalize() Query {
	if q.Group == "" {
		q.Group = GroupAll
	}
	if q.SortKey == "" {
		q.SortKey = SortKeyGroup
	}
	if q.SortDir != SortDesc {
		q.SortDir = SortAsc
	}
	return q
}

// Derive computes the display-ready member sequence: filter by search text
// and group, sort by the primary key in the requested direction, and break
// ties by locale-aware ascending name order regardless of direction so the
// result is total and stable. Pure; the input slice is not modified.
func Derive(members []domain.Member, query Query) []domain.Member {
	query = query.Normalize()
	search := strings.ToLower(query.Search)

	result := make([]domain.Member, 0, len(members))
	for _, member := range members {
		if !matchesSearch(member, search) {
			continue
		}
		if query.Group != GroupAll && member.Group != query.Group {
			continue
		}
		result = append(result, member)
	}

	collator := collate.New(language.TraditionalChinese)
	sort.SliceStable(result, func(i, j int) bool {
		a := sortValue(result[i], query.SortKey)
		b := sortValue(result[j], query.SortKey)
		if a != b {
			if query.SortDir == SortDesc {
				return a > b
			}
			return a < b
		}
		return collator.CompareString(result[i].Name, result[j].Name) < 0
	})

	return result
}

func matchesSearch(member domain.Member, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(member.Name), search) ||
		strings.Contains(strings.ToLower(member.LineName), search)
}

func sortValue(member domain.Member, key string) string {
	switch key {
	case SortKeyGroup:
		return member.Group
	case SortKeyName:
		return member.Name
	case SortKeyLineName:
		return member.LineName
	default:
		// any other key is a season label
		return member.SeasonStatus(key)
	}
}
