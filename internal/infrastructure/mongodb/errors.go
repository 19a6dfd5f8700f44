package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrIndexConflict is returned when an index with the same name or keys
	// already exists with different options
	ErrIndexConflict = errors.New("index definition conflicts with existing index")

	// ErrDuplicateSKU is returned when an insert violates the unique sku index
	ErrDuplicateSKU = errors.New("duplicate sku")
)

// Server error codes
const (
	codeNamespaceExists       = 48
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

func hasErrorCode(err error, codes ...int) bool {
	var se mongo.ServerError
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range codes {
		if se.HasErrorCode(code) {
			return true
		}
	}
	return false
}

func isNamespaceExists(err error) bool {
	return hasErrorCode(err, codeNamespaceExists)
}

func isIndexConflict(err error) bool {
	return hasErrorCode(err, codeIndexOptionsConflict, codeIndexKeySpecsConflict)
}
