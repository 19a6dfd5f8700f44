package game

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidGame is returned when a game record fails validation
var ErrInvalidGame = errors.New("invalid game record")

// ErrDuplicateSeedSKU is returned when a seed batch carries the same SKU twice
var ErrDuplicateSeedSKU = errors.New("duplicate sku in seed batch")

// Game is a single catalog entry. All seven fields are mandatory.
type Game struct {
	SKU      string  `json:"sku" bson:"sku" yaml:"sku" validate:"required"`
	Title    string  `json:"title" bson:"title" yaml:"title" validate:"required"`
	Platform string  `json:"platform" bson:"platform" yaml:"platform" validate:"required"`
	Genre    string  `json:"genre" bson:"genre" yaml:"genre" validate:"required"`
	Price    float64 `json:"price" bson:"price" yaml:"price" validate:"gte=0"`
	Stock    int     `json:"stock" bson:"stock" yaml:"stock" validate:"gte=0"`
	PEGI     int     `json:"pegi" bson:"pegi" yaml:"pegi" validate:"gte=0,lte=18"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance reports field errors by their store key instead of the Go name
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// NewGame creates a validated game record
func NewGame(sku, title, platform, genre string, price float64, stock, pegi int) (Game, error) {
	g := Game{
		SKU:      sku,
		Title:    title,
		Platform: platform,
		Genre:    genre,
		Price:    price,
		Stock:    stock,
		PEGI:     pegi,
	}
	if err := g.Validate(); err != nil {
		return Game{}, err
	}
	return g, nil
}

// Validate checks every field of the record
func (g Game) Validate() error {
	err := validatorInstance().Struct(g)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidGame, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}

	label := g.SKU
	if label == "" {
		label = "<no sku>"
	}
	return fmt.Errorf("%w %s: %s", ErrInvalidGame, label, strings.Join(problems, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be <= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// ValidateBatch validates every record and rejects repeated SKUs
func ValidateBatch(games []Game) error {
	seen := make(map[string]int, len(games))
	for i, g := range games {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if first, ok := seen[g.SKU]; ok {
			return fmt.Errorf("%w: %s at records %d and %d", ErrDuplicateSeedSKU, g.SKU, first, i)
		}
		seen[g.SKU] = i
	}
	return nil
}
