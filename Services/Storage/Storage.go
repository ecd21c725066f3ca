package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Asset kinds accepted by Upload. The kind picks the bucket folder.
const (
	KindVideo     = "video"
	KindThumbnail = "thumbnail"
	KindLogo      = "logo"
)

// UploadResult is what the media gateway hands back for a stored binary:
// the public URL and the opaque asset handle used to destroy it later.
type UploadResult struct {
	URL     string
	AssetID string
}

// UploadOptions describe the binary being uploaded.
type UploadOptions struct {
	Kind        string
	Filename    string
	ContentType string
}

// Gateway is the media-hosting contract: store a binary and get back a URL
// plus an asset handle, or destroy a previously stored binary by handle.
type Gateway interface {
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*UploadResult, error)
	Destroy(ctx context.Context, assetID string) error
}

// Config holds the credentials and addressing for an S3-compatible bucket.
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	// BaseURL is the public prefix assets are served from (CDN or bucket
	// endpoint). Object keys are appended to it.
	BaseURL string
}

// S3Gateway stores assets in an S3-compatible bucket. The object key is the
// asset handle.
type S3Gateway struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Gateway(ctx context.Context, cfg Config) (*S3Gateway, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, errors.New("missing required storage configuration")
	}

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = endpoint + "/" + cfg.Bucket
	}

	return &S3Gateway{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (g *S3Gateway) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*UploadResult, error) {
	key := objectKey(opts.Kind, opts.Filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := g.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload %s asset: %w", opts.Kind, err)
	}

	return &UploadResult{
		URL:     g.baseURL + "/" + key,
		AssetID: key,
	}, nil
}

func (g *S3Gateway) Destroy(ctx context.Context, assetID string) error {
	if assetID == "" {
		return errors.New("asset id cannot be empty")
	}

	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	return nil
}

func objectKey(kind, filename string) string {
	folder := "misc"
	switch kind {
	case KindVideo:
		folder = "videos"
	case KindThumbnail:
		folder = "thumbnails"
	case KindLogo:
		folder = "logos"
	}

	name := uuid.New().String()
	if ext := path.Ext(filename); ext != "" {
		name += ext
	}
	return folder + "/" + name
}
