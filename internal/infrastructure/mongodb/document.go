package mongodb

import (
	"fmt"
	"sort"
	"time"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toDocument converts a decoded record, lifting _id out of the fields
func toDocument(d bson.D) catalog.Document {
	var doc catalog.Document
	doc.Fields = make(catalog.Object, 0, len(d))
	for _, e := range d {
		if e.Key == "_id" {
			doc.ID = idString(e.Value)
			continue
		}
		doc.Fields = append(doc.Fields, catalog.Field{Key: e.Key, Value: toValue(e.Value)})
	}
	return doc
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(toValue(v))
	}
}

// toValue maps BSON values onto plain Go values that render as JSON.
// int32 is widened so that numbers compare the same regardless of width.
func toValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		obj := make(catalog.Object, len(val))
		for i, e := range val {
			obj[i] = catalog.Field{Key: e.Key, Value: toValue(e.Value)}
		}
		return obj
	case bson.M:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(catalog.Object, len(keys))
		for i, k := range keys {
			obj[i] = catalog.Field{Key: k, Value: toValue(val[k])}
		}
		return obj
	case bson.A:
		arr := make([]any, len(val))
		for i, item := range val {
			arr[i] = toValue(item)
		}
		return arr
	case int32:
		return int64(val)
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339Nano)
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return val.String()
	case primitive.Binary:
		return val.Data
	case primitive.Regex:
		return "/" + val.Pattern + "/" + val.Options
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return val
	}
}
