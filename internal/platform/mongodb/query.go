package mongodb

import (
	"sort"

	"github.com/taskly/taskly-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// filterDocument converts a decoded where filter into a bson.M document.
// Values under the _id key are normalized so that clients can filter by the
// hex string form of an ObjectID (including inside $in lists), the way they
// see ids in responses.
func filterDocument(filter map[string]any) bson.M {
	doc := bson.M{}
	for key, value := range filter {
		if key == "_id" {
			doc[key] = normalizeIDValue(value)
			continue
		}
		doc[key] = value
	}
	return doc
}

// normalizeIDValue rewrites hex-string id values to ObjectIDs. Operator
// documents are handled one level deep ({"$in": [...]}); anything that does
// not parse as an ObjectID is passed through untouched and simply won't match.
func normalizeIDValue(value any) any {
	switch v := value.(type) {
	case string:
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			return oid
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeIDValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for op, operand := range v {
			out[op] = normalizeIDValue(operand)
		}
		return out
	default:
		return value
	}
}

// sortDocument converts a decoded sort specification into a bson.D.
// JSON objects carry no key order, so keys are emitted alphabetically to
// keep the resulting sort deterministic. Zero directions are dropped;
// negative means descending.
func sortDocument(spec map[string]int) bson.D {
	keys := make([]string, 0, len(spec))
	for key, dir := range spec {
		if dir == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, key := range keys {
		dir := 1
		if spec[key] < 0 {
			dir = -1
		}
		doc = append(doc, bson.E{Key: key, Value: dir})
	}
	return doc
}

// projectionDocument converts a field selection into a bson projection.
// Positive values include a field, anything else excludes it.
func projectionDocument(sel store.FieldSelection) bson.D {
	keys := make([]string, 0, len(sel))
	for key := range sel {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, key := range keys {
		value := 0
		if sel[key] > 0 {
			value = 1
		}
		doc = append(doc, bson.E{Key: key, Value: value})
	}
	return doc
}

// findOptions assembles the driver options for a list query: sort,
// projection, skip and limit. Count queries never reach this path; they
// honor only the filter.
func findOptions(q store.ListQuery) *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(sortDocument(q.Sort))
	}
	if len(q.Select) > 0 {
		opts.SetProjection(projectionDocument(q.Select))
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.HasLimit {
		opts.SetLimit(q.Limit)
	}
	return opts
}

// objectIDsFromHex parses a list of hex id strings, silently dropping any
// that do not parse. Bulk updates use the result in an $in filter, so an
// unparseable id degrades to "no match" the same way a missing record does.
func objectIDsFromHex(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
