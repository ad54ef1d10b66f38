package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store stores images in one bucket under an optional key prefix.
type S3Store struct {
	client        S3API
	bucket        string
	prefix        string
	publicBaseURL string
	region        string
}

type S3Config struct {
	Bucket        string
	Prefix        string
	PublicBaseURL string
	Region        string
}

func NewS3Store(cfg aws.Config, sc S3Config) *S3Store {
	return NewS3StoreWithClient(s3.NewFromConfig(cfg), sc)
}

func NewS3StoreWithClient(client S3API, sc S3Config) *S3Store {
	prefix := strings.Trim(sc.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Store{
		client:        client,
		bucket:        sc.Bucket,
		prefix:        prefix,
		publicBaseURL: strings.TrimRight(sc.PublicBaseURL, "/"),
		region:        sc.Region,
	}
}

func (s *S3Store) Enabled() bool { return s != nil && s.client != nil && s.bucket != "" }

func (s *S3Store) objectKey(key string) string {
	return s.prefix + strings.TrimLeft(key, "/")
}

// Put uploads body and returns its public URL.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return s.URL(key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// URL prefers the configured public base URL (a CDN in front of the bucket)
// over the virtual-hosted bucket address.
func (s *S3Store) URL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + s.objectKey(key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, s.objectKey(key))
}
