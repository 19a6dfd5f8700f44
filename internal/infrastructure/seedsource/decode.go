package seedsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/vivekkundariya/catalogseed/internal/domain/game"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for seed files that are neither YAML nor JSON
	ErrUnsupportedFormat = errors.New("unsupported seed format")

	// ErrEmptySeed is returned for a seed document with no content. An
	// explicit empty list is a valid, empty batch.
	ErrEmptySeed = errors.New("seed document is empty")
)

// Format is the encoding of a seed file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the file extension
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .yaml, .yml or .json)", ErrUnsupportedFormat, name)
	}
}

// Decode parses a list of seed records and builds each one.
// Unknown fields are rejected in both formats.
func Decode(data []byte, format Format) ([]game.Game, error) {
	var drafts []game.Draft

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&drafts); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptySeed
			}
			return nil, fmt.Errorf("failed to parse yaml seed: %w", err)
		}
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, ErrEmptySeed
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&drafts); err != nil {
			return nil, fmt.Errorf("failed to parse json seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return game.BuildAll(drafts)
}
