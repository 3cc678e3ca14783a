// Package seedsource opens the prompt seed CSV from disk or S3-compatible
// object storage.
package seedsource

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

// ErrNotFound is returned when a local seed file does not exist.
var ErrNotFound = errors.New("seed source not found")

// Options configure how s3:// locations are reached.
type Options struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Location is a parsed seed path.
type Location struct {
	Bucket string
	Key    string
	Path   string
}

// IsS3 reports whether the location points at object storage.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

func (l Location) String() string {
	if l.IsS3() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return l.Path
}

// Parse splits raw into a local path or an s3://bucket/key location.
func Parse(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, errors.New("seed path is empty")
	}
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return Location{Path: raw}, nil
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid s3 location %q", raw)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Open returns a reader over the seed CSV at loc.
func Open(ctx context.Context, loc Location, opts Options) (io.ReadCloser, error) {
	if !loc.IsS3() {
		file, err := os.Open(loc.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", loc.Path, ErrNotFound)
			}
			return nil, err
		}
		return file, nil
	}
	client, err := newS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", loc, err)
	}
	return out.Body, nil
}

// OptionsFromEnv uses S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY as static
// credentials when set. Otherwise the SDK's default chain applies.
func OptionsFromEnv(endpoint, region string) Options {
	opts := Options{
		Endpoint: endpoint,
		Region:   region,
	}
	if v := os.Getenv("S3_ACCESS_KEY_ID"); v != "" {
		opts.AccessKeyID = v
	}
	if v := os.Getenv("S3_SECRET_ACCESS_KEY"); v != "" {
		opts.SecretAccessKey = v
	}
	return opts
}

func newS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	region := opts.Region
	if region == "" {
		region = "auto"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
