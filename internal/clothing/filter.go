package clothing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/knagase/wardrobe-api/pkg/pagination"
)

// RoomScope narrows a listing by storage location.
type RoomScope int

const (
	// RoomScopeAny applies no room filter.
	RoomScopeAny RoomScope = iota
	// RoomScopeUnassigned matches items with no room.
	RoomScopeUnassigned
	// RoomScopeSpecific matches items in one room.
	RoomScopeSpecific
)

// SortField is the allow-listed set of sortable columns. Anything outside the
// list silently falls back to SortByCreatedAt rather than erroring.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByName      SortField = "name"
	SortByUpdatedAt SortField = "updatedAt"
)

var sortColumns = map[SortField]string{
	SortByCreatedAt: "created_at",
	SortByName:      "name",
	SortByUpdatedAt: "updated_at",
}

// ParseSortField maps a raw query value onto the allow-list.
func ParseSortField(raw string) SortField {
	field := SortField(strings.TrimSpace(raw))
	if _, ok := sortColumns[field]; ok {
		return field
	}
	return SortByCreatedAt
}

// SortOrder is the listing direction; anything but "asc" means descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// ListFilter collects every narrowing criterion for a clothing listing. All
// criteria combine with AND; the zero value lists everything the user owns.
type ListFilter struct {
	RoomScope RoomScope
	RoomID    uuid.UUID

	// SeasonIDs matches items tagged with ANY of the given seasons.
	SeasonIDs []uuid.UUID

	// Search matches the name, case-insensitively, as a substring.
	Search string

	Sort  SortField
	Order SortOrder

	Page pagination.Params
}

// WithRoom scopes the filter to one room.
func (f ListFilter) WithRoom(id uuid.UUID) ListFilter {
	f.RoomScope = RoomScopeSpecific
	f.RoomID = id
	return f
}

// WithoutRoom scopes the filter to unassigned items.
func (f ListFilter) WithoutRoom() ListFilter {
	f.RoomScope = RoomScopeUnassigned
	f.RoomID = uuid.Nil
	return f
}

func (f ListFilter) orderClause() string {
	column, ok := sortColumns[f.Sort]
	if !ok {
		column = sortColumns[SortByCreatedAt]
	}
	direction := "DESC"
	if f.Order == SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}
