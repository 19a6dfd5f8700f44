package mongodb

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestToDocument(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")
	if err != nil {
		t.Fatal(err)
	}

	raw := bson.D{
		{Key: "_id", Value: oid},
		{Key: "sku", Value: "PC-001"},
		{Key: "price", Value: 39.99},
		{Key: "stock", Value: int32(25)},
		{Key: "pegi", Value: int64(18)},
	}

	doc := toDocument(raw)

	if doc.ID != "65a1f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("ID = %q", doc.ID)
	}
	if _, ok := doc.Fields.Get("_id"); ok {
		t.Error("_id should be lifted out of Fields")
	}
	if v, _ := doc.Get("stock"); v != int64(25) {
		t.Errorf("stock = %#v, want int64(25)", v)
	}
	if v, _ := doc.Get("pegi"); v != int64(18) {
		t.Errorf("pegi = %#v, want int64(18)", v)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","sku":"PC-001","price":39.99,"stock":25,"pegi":18}`
	if string(out) != want {
		t.Errorf("json = %s\nwant   %s", out, want)
	}
}

func TestToDocument_NonObjectID(t *testing.T) {
	doc := toDocument(bson.D{{Key: "_id", Value: "custom"}, {Key: "sku", Value: "X"}})
	if doc.ID != "custom" {
		t.Errorf("ID = %q, want custom", doc.ID)
	}

	doc = toDocument(bson.D{{Key: "_id", Value: int32(7)}})
	if doc.ID != "7" {
		t.Errorf("ID = %q, want 7", doc.ID)
	}
}

func TestToValue(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	dec, err := primitive.ParseDecimal128("59.99")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"datetime", primitive.NewDateTimeFromTime(when), `"2024-03-01T12:00:00Z"`},
		{"decimal", dec, `"59.99"`},
		{"null", primitive.Null{}, `null`},
		{"nested doc", bson.D{{Key: "z", Value: int32(1)}, {Key: "a", Value: "b"}}, `{"z":1,"a":"b"}`},
		{"map sorted", bson.M{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"array", bson.A{"PS5", int32(2), bson.D{{Key: "k", Value: true}}}, `["PS5",2,{"k":true}]`},
		{"regex", primitive.Regex{Pattern: "^Gate", Options: "i"}, `"/^Gate/i"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(toValue(tt.in))
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got %s, want %s", out, tt.want)
			}
		})
	}
}

func TestIndexModel(t *testing.T) {
	specs := catalog.GameIndexes()

	tests := []struct {
		spec     catalog.IndexSpec
		wantKeys bson.D
		unique   bool
	}{
		{specs[0], bson.D{{Key: "sku", Value: 1}}, true},
		{specs[1], bson.D{{Key: "platform", Value: 1}, {Key: "genre", Value: 1}}, false},
		{specs[2], bson.D{{Key: "title", Value: "text"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Name(), func(t *testing.T) {
			model := indexModel(tt.spec)

			keys, ok := model.Keys.(bson.D)
			if !ok {
				t.Fatalf("Keys type = %T, want bson.D", model.Keys)
			}
			if len(keys) != len(tt.wantKeys) {
				t.Fatalf("Keys = %v, want %v", keys, tt.wantKeys)
			}
			for i := range keys {
				if keys[i] != tt.wantKeys[i] {
					t.Errorf("Keys[%d] = %v, want %v", i, keys[i], tt.wantKeys[i])
				}
			}

			if model.Options.Name == nil || *model.Options.Name != tt.spec.Name() {
				t.Errorf("Name = %v, want %s", model.Options.Name, tt.spec.Name())
			}
			gotUnique := model.Options.Unique != nil && *model.Options.Unique
			if gotUnique != tt.unique {
				t.Errorf("Unique = %v, want %v", gotUnique, tt.unique)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	exists := mongo.CommandError{Code: codeNamespaceExists, Name: "NamespaceExists"}
	if !isNamespaceExists(exists) {
		t.Error("code 48 should be NamespaceExists")
	}

	for _, code := range []int32{codeIndexOptionsConflict, codeIndexKeySpecsConflict} {
		if !isIndexConflict(mongo.CommandError{Code: code}) {
			t.Errorf("code %d should be an index conflict", code)
		}
	}

	if isIndexConflict(mongo.CommandError{Code: 11000}) {
		t.Error("duplicate key is not an index conflict")
	}
	if isNamespaceExists(errors.New("plain")) {
		t.Error("plain error has no server code")
	}
}

func TestInsertedBefore(t *testing.T) {
	err := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Index: 2, Code: 11000}},
		},
	}
	if got := insertedBefore(err); got != 2 {
		t.Errorf("insertedBefore() = %d, want 2", got)
	}
	if got := insertedBefore(errors.New("network")); got != 0 {
		t.Errorf("insertedBefore() = %d, want 0", got)
	}
}
