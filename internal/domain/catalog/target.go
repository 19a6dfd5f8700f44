package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTarget is returned when a database or collection name cannot be used
var ErrInvalidTarget = errors.New("invalid target")

// Target identifies the collection being bootstrapped
type Target struct {
	Database   string
	Collection string
}

// String returns the namespace in "database.collection" form
func (t Target) String() string {
	return t.Database + "." + t.Collection
}

// Validate checks that both names are usable by the store
func (t Target) Validate() error {
	if t.Database == "" {
		return fmt.Errorf("%w: database name is empty", ErrInvalidTarget)
	}
	if t.Collection == "" {
		return fmt.Errorf("%w: collection name is empty", ErrInvalidTarget)
	}
	if strings.ContainsAny(t.Database, `/\. "$`+"\x00") {
		return fmt.Errorf("%w: database name %q contains a forbidden character", ErrInvalidTarget, t.Database)
	}
	if strings.ContainsAny(t.Collection, "$\x00") {
		return fmt.Errorf("%w: collection name %q contains a forbidden character", ErrInvalidTarget, t.Collection)
	}
	if strings.HasPrefix(t.Collection, "system.") {
		return fmt.Errorf("%w: collection name %q is reserved", ErrInvalidTarget, t.Collection)
	}
	return nil
}
