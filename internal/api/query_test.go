package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskly/taskly-api/internal/store"
)

func listRequest(t *testing.T, params url.Values) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/api/tasks?"+params.Encode(), nil)
}

func TestParseListQuery(t *testing.T) {
	t.Run("full_query_surface", func(t *testing.T) {
		req := listRequest(t, url.Values{
			"where":  {`{"completed": false, "assignedUser": ""}`},
			"sort":   {`{"deadline": 1, "name": -1}`},
			"select": {`{"name": 1, "description": 1}`},
			"skip":   {"10"},
			"limit":  {"25"},
		})

		q, countOnly, err := parseListQuery(req)
		require.NoError(t, err)
		assert.False(t, countOnly)

		assert.Equal(t, map[string]any{"completed": false, "assignedUser": ""}, q.Filter)
		assert.Equal(t, map[string]int{"deadline": 1, "name": -1}, q.Sort)
		assert.Equal(t, map[string]int{"name": 1, "description": 1}, q.Select)
		assert.Equal(t, int64(10), q.Skip)
		assert.Equal(t, int64(25), q.Limit)
		assert.True(t, q.HasLimit)
	})

	t.Run("empty_query_has_no_limit", func(t *testing.T) {
		req := listRequest(t, url.Values{})

		q, countOnly, err := parseListQuery(req)
		require.NoError(t, err)
		assert.False(t, countOnly)
		assert.Nil(t, q.Filter)
		assert.False(t, q.HasLimit)
	})

	t.Run("count_flag", func(t *testing.T) {
		req := listRequest(t, url.Values{"count": {"true"}})
		_, countOnly, err := parseListQuery(req)
		require.NoError(t, err)
		assert.True(t, countOnly)

		// Anything other than the literal "true" leaves count mode off.
		req = listRequest(t, url.Values{"count": {"1"}})
		_, countOnly, err = parseListQuery(req)
		require.NoError(t, err)
		assert.False(t, countOnly)
	})

	t.Run("sort_direction_aliases", func(t *testing.T) {
		req := listRequest(t, url.Values{"sort": {`{"deadline": "asc", "name": "desc"}`}})

		q, _, err := parseListQuery(req)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"deadline": 1, "name": -1}, q.Sort)
	})

	tests := []struct {
		name   string
		params url.Values
	}{
		{"malformed_where", url.Values{"where": {`{"completed":`}}},
		{"where_not_an_object", url.Values{"where": {`[1,2,3]`}}},
		{"malformed_sort", url.Values{"sort": {`deadline`}}},
		{"sort_with_bogus_direction", url.Values{"sort": {`{"deadline": "sideways"}`}}},
		{"sort_with_object_value", url.Values{"sort": {`{"deadline": {"$gt": 1}}`}}},
		{"malformed_select", url.Values{"select": {`{`}}},
		{"non_integer_skip", url.Values{"skip": {"ten"}}},
		{"negative_skip", url.Values{"skip": {"-1"}}},
		{"non_integer_limit", url.Values{"limit": {"all"}}},
		{"negative_limit", url.Values{"limit": {"-5"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseListQuery(listRequest(t, tc.params))
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrInvalidQuery)
		})
	}
}

func TestParseFieldSelection(t *testing.T) {
	t.Run("absent_select_is_nil", func(t *testing.T) {
		sel, err := parseFieldSelection(listRequest(t, url.Values{}))
		require.NoError(t, err)
		assert.Nil(t, sel)
	})

	t.Run("inclusion_and_exclusion", func(t *testing.T) {
		sel, err := parseFieldSelection(listRequest(t, url.Values{
			"select": {`{"name": 1, "pendingTasks": 0}`},
		}))
		require.NoError(t, err)
		assert.Equal(t, store.FieldSelection{"name": 1, "pendingTasks": 0}, sel)
	})

	t.Run("malformed_select", func(t *testing.T) {
		_, err := parseFieldSelection(listRequest(t, url.Values{"select": {`nope`}}))
		assert.ErrorIs(t, err, store.ErrInvalidQuery)
	})
}
