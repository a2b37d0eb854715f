// Package s3store implements the BlobStore interface on Amazon S3.
package s3store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/domain"
)

// PutObjectAPI is the subset of the S3 client used by the store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store implements the BlobStore interface.
type Store struct {
	client PutObjectAPI
}

// NewStore creates an S3 blob store.
func NewStore(client PutObjectAPI) *Store {
	return &Store{client: client}
}

// NewClient builds an S3 client from an AWS config. A non-empty endpoint
// targets an S3-compatible service with path-style addressing.
func NewClient(cfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

// Upload streams the file at localPath to ref, overwriting any existing
// object. The content length is taken from the file size before the
// transfer starts.
func (s *Store) Upload(ctx context.Context, localPath string, ref domain.StorageReference) (int64, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "s3",
		"bucket":              ref.Bucket,
		"key":                 ref.Key,
	})
	log := zerowrap.FromCtx(ctx)

	f, err := os.Open(localPath)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %v", domain.ErrUploadFailed, localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s: %v", domain.ErrUploadFailed, localPath, err)
	}
	size := info.Size()

	start := time.Now()
	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(ref.Bucket),
		Key:           aws.String(ref.Key),
		Body:          f,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(domain.ArchiveContentType),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: put s3://%s/%s: %w", domain.ErrUploadFailed, ref.Bucket, ref.Key, err)
	}

	log.Debug().
		Int64(zerowrap.FieldSize, size).
		Dur(zerowrap.FieldDuration, time.Since(start)).
		Str("etag", aws.ToString(out.ETag)).
		Msg("object stored")

	return size, nil
}
