package domain

import "fmt"

// DominionStatus enumerates the seasonal reward outcomes for a member. The
// values are the wire literals shared with the legacy dataset, so documents
// written by either system remain readable by the other.
type DominionStatus string

const (
	StatusEmpty               DominionStatus = "空白"
	StatusCurrentDominion     DominionStatus = "當季霸業"
	StatusReceived            DominionStatus = "已領過"
	StatusGuaranteedTopFive   DominionStatus = "霸業前五保障"
	StatusReceivedNoGuarantee DominionStatus = "領過(無保障)"
	StatusLeftDuringSeason    DominionStatus = "當季離隊"
	StatusQuit                DominionStatus = "已離隊"
)

// AllStatuses lists every valid status variant.
func AllStatuses() []DominionStatus {
	return []DominionStatus{
		StatusEmpty,
		StatusCurrentDominion,
		StatusReceived,
		StatusGuaranteedTopFive,
		StatusReceivedNoGuarantee,
		StatusLeftDuringSeason,
		StatusQuit,
	}
}

// Valid reports whether s is one of the seven known variants.
func (s DominionStatus) Valid() bool {
	switch s {
	case StatusEmpty, StatusCurrentDominion, StatusReceived, StatusGuaranteedTopFive,
		StatusReceivedNoGuarantee, StatusLeftDuringSeason, StatusQuit:
		return true
	}
	return false
}

// ParseStatus converts a raw value into a DominionStatus, rejecting anything
// outside the closed variant set.
func ParseStatus(raw string) (DominionStatus, error) {
	s := DominionStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown dominion status %q", raw)
	}
	return s, nil
}

// SeasonalStatus pairs a season label with the member's status for it.
type SeasonalStatus struct {
	Season string         `json:"season"`
	Status DominionStatus `json:"status"`
}

// Member is the roster aggregate.
type Member struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Group           string           `json:"group"`
	LineName        string           `json:"lineName"`
	SeasonalHistory []SeasonalStatus `json:"seasonalHistory"`
}

// DefaultName is used when a member document carries no display name.
const DefaultName = "Unknown"

// Groups returns the fixed squad group alphabet A through Z.
func Groups() []string {
	groups := make([]string, 26)
	for i := range groups {
		groups[i] = string(rune('A' + i))
	}
	return groups
}

// DefaultGroup is the first symbol of the group alphabet.
const DefaultGroup = "A"

// ValidGroup reports whether g is a single symbol from the group alphabet.
func ValidGroup(g string) bool {
	return len(g) == 1 && g[0] >= 'A' && g[0] <= 'Z'
}

// NormalizeHistory aligns a raw seasonal history with the configured season
// list: for each season the existing entry is kept when present (exact label
// match), otherwise an Empty entry is synthesized. Output order follows the
// season list, not the input. Entries with an unknown status or a season
// outside the list are treated as absent.
func NormalizeHistory(raw []SeasonalStatus, seasons []string) []SeasonalStatus {
	history := make([]SeasonalStatus, 0, len(seasons))
	for _, season := range seasons {
		entry := SeasonalStatus{Season: season, Status: StatusEmpty}
		for _, existing := range raw {
			if existing.Season == season && existing.Status.Valid() {
				entry = existing
				break
			}
		}
		history = append(history, entry)
	}
	return history
}

// EmptyHistory builds an all-Empty history for the given seasons.
func EmptyHistory(seasons []string) []SeasonalStatus {
	return NormalizeHistory(nil, seasons)
}

// SeasonStatus returns the member's status for a season, or the empty string
// when no entry exists. Post-normalization every configured season has an
// entry, so the fallback only matters for unnormalized input.
func (m Member) SeasonStatus(season string) string {
	for _, entry := range m.SeasonalHistory {
		if entry.Season == season {
			return string(entry.Status)
		}
	}
	return ""
}

// DominionCount counts the seasons a member won the dominion reward.
func (m Member) DominionCount() int {
	count := 0
	for _, entry := range m.SeasonalHistory {
		if entry.Status == StatusCurrentDominion {
			count++
		}
	}
	return count
}

// SeasonDominionCount tallies members holding CurrentDominion for a season.
func SeasonDominionCount(members []Member, season string) int {
	count := 0
	for _, m := range members {
		if DominionStatus(m.SeasonStatus(season)) == StatusCurrentDominion {
			count++
		}
	}
	return count
}
