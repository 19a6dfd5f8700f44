package seedsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vivekkundariya/catalogseed/internal/application/ports"
	"github.com/vivekkundariya/catalogseed/internal/domain/game"
	"github.com/vivekkundariya/catalogseed/internal/infrastructure/aws"
)

// BuiltinName selects the built-in seed explicitly
const BuiltinName = "builtin"

// New picks a seed source from its location: empty or "builtin" for the
// built-in records, s3://bucket/key for an object, anything else is a file path.
func New(location string, opts aws.S3Options) (ports.SeedSource, error) {
	switch {
	case location == "" || location == BuiltinName:
		return Builtin{}, nil
	case strings.HasPrefix(location, "s3://"):
		return NewS3(location, opts)
	default:
		return NewFile(location)
	}
}

// Builtin serves the default catalog
type Builtin struct{}

func (Builtin) Load(ctx context.Context) ([]game.Game, error) {
	return game.DefaultSeed(), nil
}

func (Builtin) Describe() string {
	return BuiltinName
}

// File reads seed records from a local YAML or JSON file
type File struct {
	path   string
	format Format
}

// NewFile checks the extension up front so a bad path fails before connecting
func NewFile(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, format: format}, nil
}

func (f *File) Load(ctx context.Context) ([]game.Game, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Decode(data, f.format)
}

func (f *File) Describe() string {
	return f.path
}

// ObjectGetter fetches an object body
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// S3 reads seed records from an object in S3
type S3 struct {
	uri    string
	bucket string
	key    string
	format Format
	opts   aws.S3Options
	getter ObjectGetter
}

// NewS3 parses the location. The client is created on first Load.
func NewS3(uri string, opts aws.S3Options) (*S3, error) {
	bucket, key, err := aws.ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	format, err := FormatOf(key)
	if err != nil {
		return nil, err
	}
	return &S3{uri: uri, bucket: bucket, key: key, format: format, opts: opts}, nil
}

// WithGetter replaces the S3 client
func (s *S3) WithGetter(getter ObjectGetter) *S3 {
	s.getter = getter
	return s
}

func (s *S3) Load(ctx context.Context) ([]game.Game, error) {
	if s.getter == nil {
		reader, err := aws.NewObjectReader(ctx, s.opts)
		if err != nil {
			return nil, err
		}
		s.getter = reader
	}

	data, err := s.getter.GetObject(ctx, s.bucket, s.key)
	if err != nil {
		return nil, err
	}
	return Decode(data, s.format)
}

func (s *S3) Describe() string {
	return s.uri
}
