package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is used when no region is configured
const DefaultRegion = "us-east-1"

// ErrInvalidS3URI is returned for locations that are not s3://bucket/key
var ErrInvalidS3URI = errors.New("invalid s3 uri")

// S3Options configures the S3 client
type S3Options struct {
	// Endpoint overrides the AWS endpoint (LocalStack, MinIO). Path-style
	// addressing is used when set.
	Endpoint string
	Region   string
}

// ObjectReader fetches whole objects from S3
type ObjectReader struct {
	client *s3.Client
}

// NewObjectReader creates a reader using the default AWS credential chain.
// With a custom endpoint and no AWS credentials in the environment, the
// LocalStack test credentials are used.
func NewObjectReader(ctx context.Context, opts S3Options) (*ObjectReader, error) {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.UsePathStyle = true
		}
	})
	return &ObjectReader{client: client}, nil
}

func loadConfig(ctx context.Context, opts S3Options) (aws.Config, error) {
	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, r string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               opts.Endpoint,
					SigningRegion:     region,
					HostnameImmutable: true,
				}, nil
			})))

		if os.Getenv("AWS_ACCESS_KEY_ID") == "" && os.Getenv("AWS_PROFILE") == "" {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("test", "test", "")))
		}
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}

// GetObject returns the object body
func (r *ObjectReader) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// ParseS3URI splits s3://bucket/key into its parts
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %q does not start with s3://", ErrInvalidS3URI, uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q needs both a bucket and a key", ErrInvalidS3URI, uri)
	}
	return bucket, key, nil
}
