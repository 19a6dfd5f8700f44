package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Environment variables read during resolution. The unprefixed MONGO_URL
// and MONGO_DB are honored as fallbacks for existing deployments.
const (
	EnvMongoURI        = "CATALOGSEED_MONGO_URI"
	EnvMongoURL        = "MONGO_URL"
	EnvMongoDatabase   = "CATALOGSEED_MONGO_DATABASE"
	EnvMongoDB         = "MONGO_DB"
	EnvMongoCollection = "CATALOGSEED_MONGO_COLLECTION"
	EnvMongoTimeout    = "CATALOGSEED_MONGO_TIMEOUT"
	EnvSeedSource      = "CATALOGSEED_SEED_SOURCE"
	EnvS3Endpoint      = "CATALOGSEED_S3_ENDPOINT"
	EnvS3Region        = "CATALOGSEED_S3_REGION"
	EnvOutput          = "CATALOGSEED_OUTPUT"
	EnvOTLPEndpoint    = "CATALOGSEED_OTLP_ENDPOINT"
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyEnv overlays environment values onto cfg
func (c *GlobalConfig) applyEnv(lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	set := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v, ok := lookup(key); ok && v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Mongo.URI, EnvMongoURI, EnvMongoURL)
	set(&c.Mongo.Database, EnvMongoDatabase, EnvMongoDB)
	set(&c.Mongo.Collection, EnvMongoCollection)
	set(&c.Mongo.Timeout, EnvMongoTimeout)
	set(&c.Seed.Source, EnvSeedSource)
	set(&c.Seed.S3.Endpoint, EnvS3Endpoint)
	set(&c.Seed.S3.Region, EnvS3Region)
	set(&c.Output.Format, EnvOutput)
	set(&c.Telemetry.OTLPEndpoint, EnvOTLPEndpoint)
}

// databaseFromURI returns the database named in the connection string path, if any
func databaseFromURI(uri string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return ""
	}
	return cs.Database
}
