package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/raywall/onet-interest-profiler/pkg/awsconf"
)

// S3API é o subconjunto do cliente S3 usado pelo backend (mockável).
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend guarda o documento como um objeto s3://bucket/key.
type S3Backend struct {
	client S3API
	bucket string
	key    string
}

// NewS3Backend cria o backend com um cliente já configurado.
func NewS3Backend(client S3API, bucket, key string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket, key: key}
}

// OpenS3 interpreta s3://bucket/key e cria o cliente a partir da
// configuração padrão da AWS.
func OpenS3(ctx context.Context, location, region string) (*S3Backend, error) {
	u, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, &errs.ConfigurationError{Key: "output", Reason: fmt.Sprintf("s3 location must be s3://bucket/key, got %q", location)}
	}

	cfg, err := awsconf.Get(ctx, region)
	if err != nil {
		return nil, &errs.ConfigurationError{Key: "aws", Reason: err.Error()}
	}
	return NewS3Backend(s3.NewFromConfig(cfg), u.Host, key), nil
}

func (b *S3Backend) Location() string { return "s3://" + b.bucket + "/" + b.key }

func (b *S3Backend) Put(ctx context.Context, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return &errs.IOError{Op: "s3 put", Path: b.Location(), Err: err}
	}
	return nil
}

func (b *S3Backend) Get(ctx context.Context) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, &errs.NotFoundError{Path: b.Location(), Err: err}
		}
		return nil, &errs.IOError{Op: "s3 get", Path: b.Location(), Err: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &errs.IOError{Op: "s3 read", Path: b.Location(), Err: err}
	}
	return data, nil
}
