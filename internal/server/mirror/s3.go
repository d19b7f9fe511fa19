// Package mirror copies accepted uploads to an S3-compatible object store
// when one is configured. Mirroring is best-effort: a failed copy is logged
// by the caller but never fails the upload itself.
package mirror

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Options describe the target object store.
type Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3Mirror writes upload copies to a bucket.
type S3Mirror struct {
	client *s3.Client
	bucket string
}

// New builds a mirror client against the configured endpoint (MinIO or any
// S3-compatible store; path-style addressing is used for compatibility).
func New(ctx context.Context, opts Options) (*S3Mirror, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.Endpoint)
		o.UsePathStyle = true
	})

	return &S3Mirror{client: client, bucket: opts.Bucket}, nil
}

// StorageKey builds the object key for an upload received at ts.
func StorageKey(ts time.Time, name string) string {
	return fmt.Sprintf("uploads/%d/%02d/%02d/%v/%s", ts.Year(), int(ts.Month()), ts.Day(), uuid.New(), name)
}

// Put copies size bytes from r into the bucket under key.
func (m *S3Mirror) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
