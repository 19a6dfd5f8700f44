package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vivekkundariya/catalogseed/internal/config"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

// writeDocuments prints the collection dump, the only thing written to stdout
func writeDocuments(w io.Writer, docs []catalog.Document, format string) error {
	switch format {
	case config.OutputTable:
		ui.RenderDocuments(w, docs)
		return nil
	case config.OutputJSON, "":
		if docs == nil {
			docs = []catalog.Document{}
		}
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode documents: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
