package catalog

import (
	"strings"
	"testing"
)

func TestGameIndexes_Order(t *testing.T) {
	indexes := GameIndexes()
	if len(indexes) != 3 {
		t.Fatalf("expected 3 indexes, got %d", len(indexes))
	}

	expected := []struct {
		name   string
		unique bool
	}{
		{"sku_1", true},
		{"platform_1_genre_1", false},
		{"title_text", false},
	}

	for i, want := range expected {
		if got := indexes[i].Name(); got != want.name {
			t.Errorf("index %d Name() = %q, want %q", i, got, want.name)
		}
		if indexes[i].Unique != want.unique {
			t.Errorf("index %d Unique = %v, want %v", i, indexes[i].Unique, want.unique)
		}
		if err := indexes[i].Validate(); err != nil {
			t.Errorf("index %d Validate() error: %v", i, err)
		}
	}
}

func TestIndexSpec_Describe(t *testing.T) {
	indexes := GameIndexes()

	tests := []struct {
		spec     IndexSpec
		expected string
	}{
		{indexes[0], "sku (ascending, unique)"},
		{indexes[1], "platform, genre (ascending)"},
		{indexes[2], "title (text)"},
	}

	for _, tt := range tests {
		if got := tt.spec.Describe(); got != tt.expected {
			t.Errorf("Describe() = %q, want %q", got, tt.expected)
		}
	}
}

func TestIndexSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    IndexSpec
		wantErr string
	}{
		{
			name:    "no keys",
			spec:    IndexSpec{},
			wantErr: "no keys",
		},
		{
			name:    "empty field",
			spec:    IndexSpec{Keys: []IndexKey{{Field: "", Kind: IndexKindAscending}}},
			wantErr: "empty field name",
		},
		{
			name: "repeated field",
			spec: IndexSpec{Keys: []IndexKey{
				{Field: "sku", Kind: IndexKindAscending},
				{Field: "sku", Kind: IndexKindAscending},
			}},
			wantErr: "repeats field sku",
		},
		{
			name:    "unknown kind",
			spec:    IndexSpec{Keys: []IndexKey{{Field: "sku", Kind: "hashed"}}},
			wantErr: "unknown kind",
		},
		{
			name:    "unique text",
			spec:    IndexSpec{Keys: []IndexKey{{Field: "title", Kind: IndexKindText}}, Unique: true},
			wantErr: "cannot be unique",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexSpec_Fields(t *testing.T) {
	fields := GameIndexes()[1].Fields()
	if len(fields) != 2 || fields[0] != "platform" || fields[1] != "genre" {
		t.Errorf("Fields() = %v, want [platform genre]", fields)
	}
}
