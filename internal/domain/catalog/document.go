package catalog

import (
	"bytes"
	"encoding/json"
)

// Field is a single key/value pair of a stored document
type Field struct {
	Key   string
	Value any
}

// Object is an ordered set of fields. Nested documents are Objects too.
type Object []Field

// Get returns the value stored under key
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON keeps the stored field order
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is a record as read back from the collection
type Document struct {
	ID     string
	Fields Object
}

// Get returns the value of a top-level field; "_id" returns the ID
func (d Document) Get(key string) (any, bool) {
	if key == "_id" {
		return d.ID, d.ID != ""
	}
	return d.Fields.Get(key)
}

// MarshalJSON renders the document with "_id" first, like the store does
func (d Document) MarshalJSON() ([]byte, error) {
	obj := d.Fields
	if d.ID != "" {
		obj = append(Object{{Key: "_id", Value: d.ID}}, d.Fields...)
	}
	return obj.MarshalJSON()
}

// SKUs returns the sku of every document that has one, in order
func SKUs(docs []Document) []string {
	var skus []string
	for _, d := range docs {
		if v, ok := d.Get("sku"); ok {
			if s, ok := v.(string); ok {
				skus = append(skus, s)
			}
		}
	}
	return skus
}
