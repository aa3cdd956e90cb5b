package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskly/taskly-api/internal/store"
)

// parseListQuery decodes the generic list query surface
// (where/sort/select/skip/limit/count) into the internal query
// specification. The second return value reports count mode. Any malformed
// parameter yields store.ErrInvalidQuery (wrapped) before the store is
// touched.
func parseListQuery(r *http.Request) (store.ListQuery, bool, error) {
	var q store.ListQuery
	params := r.URL.Query()

	if raw := params.Get("where"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &q.Filter); err != nil {
			return q, false, fmt.Errorf("%w: where: %v", store.ErrInvalidQuery, err)
		}
	}

	if raw := params.Get("sort"); raw != "" {
		sortSpec, err := decodeDirectionDoc(raw, "sort")
		if err != nil {
			return q, false, err
		}
		q.Sort = sortSpec
	}

	if raw := params.Get("select"); raw != "" {
		sel, err := decodeDirectionDoc(raw, "select")
		if err != nil {
			return q, false, err
		}
		q.Select = sel
	}

	if raw := params.Get("skip"); raw != "" {
		skip, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || skip < 0 {
			return q, false, fmt.Errorf("%w: skip must be a non-negative integer", store.ErrInvalidQuery)
		}
		q.Skip = skip
	}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			return q, false, fmt.Errorf("%w: limit must be a non-negative integer", store.ErrInvalidQuery)
		}
		q.Limit = limit
		q.HasLimit = true
	}

	return q, params.Get("count") == "true", nil
}

// parseFieldSelection decodes the select parameter for single-record reads.
func parseFieldSelection(r *http.Request) (store.FieldSelection, error) {
	raw := r.URL.Query().Get("select")
	if raw == "" {
		return nil, nil
	}
	sel, err := decodeDirectionDoc(raw, "select")
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// decodeDirectionDoc decodes a JSON object mapping field names to a
// direction/inclusion marker. Numbers are used directly; the strings
// "asc"/"desc" and booleans are accepted as aliases, mirroring what
// document-store clients conventionally send.
func decodeDirectionDoc(raw, param string) (map[string]int, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrInvalidQuery, param, err)
	}

	out := make(map[string]int, len(doc))
	for field, value := range doc {
		switch v := value.(type) {
		case float64:
			switch {
			case v > 0:
				out[field] = 1
			case v < 0:
				out[field] = -1
			default:
				out[field] = 0
			}
		case bool:
			if v {
				out[field] = 1
			} else {
				out[field] = -1
			}
		case string:
			switch strings.ToLower(v) {
			case "asc", "ascending":
				out[field] = 1
			case "desc", "descending":
				out[field] = -1
			default:
				return nil, fmt.Errorf("%w: %s: unsupported direction %q", store.ErrInvalidQuery, param, v)
			}
		default:
			return nil, fmt.Errorf("%w: %s: unsupported value for field %q", store.ErrInvalidQuery, param, field)
		}
	}
	return out, nil
}
