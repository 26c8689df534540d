package clothing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatchDistinguishesAbsentNullAndValue(t *testing.T) {
	type body struct {
		Name  Patch[string] `json:"name"`
		Color Patch[string] `json:"color"`
		Brand Patch[string] `json:"brand"`
	}

	var decoded body
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Coat","color":null}`), &decoded))

	require.True(t, decoded.Name.Set)
	require.NotNil(t, decoded.Name.Value)
	require.Equal(t, "Coat", *decoded.Name.Value)

	require.True(t, decoded.Color.Set, "explicit null counts as set")
	require.Nil(t, decoded.Color.Value)

	require.False(t, decoded.Brand.Set, "absent field stays unset")
}

func TestPatchSliceValues(t *testing.T) {
	type body struct {
		SeasonIDs Patch[[]string] `json:"seasonIds"`
	}

	var decoded body
	require.NoError(t, json.Unmarshal([]byte(`{"seasonIds":["a","b"]}`), &decoded))
	require.True(t, decoded.SeasonIDs.Set)
	require.NotNil(t, decoded.SeasonIDs.Value)
	require.Equal(t, []string{"a", "b"}, *decoded.SeasonIDs.Value)

	decoded = body{}
	require.NoError(t, json.Unmarshal([]byte(`{"seasonIds":[]}`), &decoded))
	require.True(t, decoded.SeasonIDs.Set)
	require.NotNil(t, decoded.SeasonIDs.Value)
	require.Empty(t, *decoded.SeasonIDs.Value)
}

func TestParseSortFieldFallsBack(t *testing.T) {
	require.Equal(t, SortByName, ParseSortField("name"))
	require.Equal(t, SortByUpdatedAt, ParseSortField("updatedAt"))
	require.Equal(t, SortByCreatedAt, ParseSortField(""))
	require.Equal(t, SortByCreatedAt, ParseSortField("password_hash"), "unknown fields fall back silently")
}

func TestParseSortOrder(t *testing.T) {
	require.Equal(t, SortAsc, ParseSortOrder("asc"))
	require.Equal(t, SortAsc, ParseSortOrder("ASC"))
	require.Equal(t, SortDesc, ParseSortOrder("desc"))
	require.Equal(t, SortDesc, ParseSortOrder("sideways"))
}
