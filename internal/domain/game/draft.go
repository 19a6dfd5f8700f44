package game

import (
	"fmt"
	"strings"
)

// Draft is the loosely-typed form of a game record as it arrives from a
// seed file. Nil fields were absent in the input.
type Draft struct {
	SKU      *string  `json:"sku" yaml:"sku"`
	Title    *string  `json:"title" yaml:"title"`
	Platform *string  `json:"platform" yaml:"platform"`
	Genre    *string  `json:"genre" yaml:"genre"`
	Price    *float64 `json:"price" yaml:"price"`
	Stock    *int     `json:"stock" yaml:"stock"`
	PEGI     *int     `json:"pegi" yaml:"pegi"`
}

// Build converts the draft into a validated Game, reporting every missing field
func (d Draft) Build() (Game, error) {
	var missing []string
	if d.SKU == nil {
		missing = append(missing, "sku")
	}
	if d.Title == nil {
		missing = append(missing, "title")
	}
	if d.Platform == nil {
		missing = append(missing, "platform")
	}
	if d.Genre == nil {
		missing = append(missing, "genre")
	}
	if d.Price == nil {
		missing = append(missing, "price")
	}
	if d.Stock == nil {
		missing = append(missing, "stock")
	}
	if d.PEGI == nil {
		missing = append(missing, "pegi")
	}

	if len(missing) > 0 {
		label := "<no sku>"
		if d.SKU != nil && *d.SKU != "" {
			label = *d.SKU
		}
		return Game{}, fmt.Errorf("%w %s: missing %s", ErrInvalidGame, label, strings.Join(missing, ", "))
	}

	return NewGame(*d.SKU, *d.Title, *d.Platform, *d.Genre, *d.Price, *d.Stock, *d.PEGI)
}

// BuildAll converts a list of drafts, stopping at the first invalid one
func BuildAll(drafts []Draft) ([]Game, error) {
	games := make([]Game, 0, len(drafts))
	for i, d := range drafts {
		g, err := d.Build()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		games = append(games, g)
	}
	return games, nil
}
