// Package publish uploads a finished collage to an S3-compatible bucket
// (AWS S3 or MinIO).
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// defaultBucketRegion is the region S3 rejects as an explicit location
// constraint.
const defaultBucketRegion = "us-east-1"

// Config selects the bucket. An empty Bucket disables publishing.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool { return c.Bucket != "" }

// API is the subset of *s3.Client the publisher needs.
type API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads files into the configured bucket.
type Publisher struct {
	client API
	cfg    Config
}

// New builds a publisher backed by a real S3 client. A custom Endpoint
// switches to path-style addressing, which MinIO requires.
func New(ctx context.Context, cfg Config) (*Publisher, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, cfg), nil
}

// NewWithClient builds a publisher around an existing client.
func NewWithClient(client API, cfg Config) *Publisher {
	return &Publisher{client: client, cfg: cfg}
}

// Key is the object key a local file is stored under.
func (p *Publisher) Key(localPath string) string {
	return path.Join(p.cfg.Prefix, filepath.Base(localPath))
}

// Upload puts the file at localPath into the bucket, creating the bucket
// first if it does not exist. It returns the object key.
func (p *Publisher) Upload(ctx context.Context, localPath string) (string, error) {
	if err := p.ensureBucket(ctx); err != nil {
		return "", err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := p.Key(localPath)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to s3://%s/%s: %w", localPath, p.cfg.Bucket, key, err)
	}
	return key, nil
}

func (p *Publisher) ensureBucket(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.cfg.Bucket)})
	if err == nil {
		return nil
	}
	var nf *types.NotFound
	if !errors.As(err, &nf) {
		return fmt.Errorf("check bucket %s: %w", p.cfg.Bucket, err)
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(p.cfg.Bucket)}
	if p.cfg.Region != "" && p.cfg.Region != defaultBucketRegion {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(p.cfg.Region),
		}
	}
	if _, err := p.client.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("create bucket %s: %w", p.cfg.Bucket, err)
	}
	return nil
}
