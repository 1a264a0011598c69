package dto

// SeasonalStatusPayload mirrors one season entry on the wire.
type SeasonalStatusPayload struct {
	Season string `json:"season"`
	Status string `json:"status"`
}

// SaveMemberRequest carries create/edit fields. Pointer fields distinguish
// "absent" from "set to empty" so edits patch only what was sent.
type SaveMemberRequest struct {
	Name            *string                 `json:"name"`
	Group           *string                 `json:"group"`
	LineName        *string                 `json:"lineName"`
	SeasonalHistory []SeasonalStatusPayload `json:"seasonalHistory"`
}

// StatusUpdateRequest sets one season's status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// GroupUpdateRequest patches the group symbol.
type GroupUpdateRequest struct {
	Group string `json:"group"`
}

// LineNameUpdateRequest patches the line contact name.
type LineNameUpdateRequest struct {
	LineName string `json:"lineName"`
}

// MemberResponse is the display-ready member shape.
type MemberResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Group           string                  `json:"group"`
	LineName        string                  `json:"lineName"`
	SeasonalHistory []SeasonalStatusPayload `json:"seasonalHistory"`
	DominionCount   int                     `json:"dominionCount"`
}

// RosterResponse is the derived view plus roster-wide tallies.
type RosterResponse struct {
	Members        []MemberResponse `json:"members"`
	Seasons        []string         `json:"seasons"`
	DominionTotals map[string]int   `json:"dominionTotals"`
	SyncState      string           `json:"syncState"`
	Total          int              `json:"total"`
}

// CreatedResponse returns the identifier of a created document.
type CreatedResponse struct {
	ID string `json:"id"`
}
