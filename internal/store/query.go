package store

// ListQuery is the internal representation of the ad-hoc query surface
// exposed on the list endpoints (where/sort/select/skip/limit). It is
// decoded and validated at the API boundary; a ListQuery handed to a store
// is assumed well-formed.
type ListQuery struct {
	// Filter holds the decoded "where" document. A nil or empty map
	// matches every record.
	Filter map[string]any

	// Sort maps field names to a direction: positive ascending, negative
	// descending. Zero entries are ignored.
	Sort map[string]int

	// Select maps field names to inclusion (positive) or exclusion
	// (non-positive), mirroring a projection document. A nil map returns
	// all fields.
	Select map[string]int

	// Skip is the number of matching records to pass over.
	Skip int64

	// Limit caps the number of returned records when HasLimit is true.
	// Callers apply resource-specific defaults (tasks default to 100)
	// before handing the query to a store.
	Limit    int64
	HasLimit bool
}

// FieldSelection is a projection applied to single-record reads.
// Semantics match ListQuery.Select.
type FieldSelection map[string]int
