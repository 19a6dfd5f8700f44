package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
)

// gameColumns are shown first, in this order, when present
var gameColumns = []string{"_id", "sku", "title", "platform", "genre", "price", "stock", "pegi"}

// RenderDocuments writes the documents as a table. Fields outside the game
// schema get their own columns after the known ones.
func RenderDocuments(w io.Writer, docs []catalog.Document) {
	columns := documentColumns(docs)

	t := newTable(w)
	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, doc := range docs {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			if v, ok := doc.Get(c); ok {
				row[i] = FormatValue(v)
			}
		}
		t.AppendRow(row)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "price", Align: text.AlignRight},
		{Name: "stock", Align: text.AlignRight},
		{Name: "pegi", Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{fmt.Sprintf("%d records", len(docs))})
	t.Render()
}

// RenderSettings writes a two column setting/value table
func RenderSettings(w io.Writer, rows [][2]string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Setting", "Value"})
	for _, r := range rows {
		t.AppendRow(table.Row{r[0], r[1]})
	}
	t.Render()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	if !ColorEnabled() {
		t.Style().Color = table.ColorOptions{}
	}
	return t
}

func documentColumns(docs []catalog.Document) []string {
	present := make(map[string]bool)
	var extra []string
	for _, doc := range docs {
		if doc.ID != "" {
			present["_id"] = true
		}
		for _, f := range doc.Fields {
			if !present[f.Key] && !isGameColumn(f.Key) {
				extra = append(extra, f.Key)
			}
			present[f.Key] = true
		}
	}

	var columns []string
	for _, c := range gameColumns {
		if present[c] {
			columns = append(columns, c)
		}
	}
	return append(columns, extra...)
}

func isGameColumn(key string) bool {
	for _, c := range gameColumns {
		if c == key {
			return true
		}
	}
	return false
}

// FormatValue renders a document value for a table cell
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case catalog.Object, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
