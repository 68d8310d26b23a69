package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/auswindowshrouds/awsbackend/config"
)

// R2Store stores objects in a Cloudflare R2 bucket through the S3 API.
// Public URLs use the custom domain (or r2.dev URL) configured for the
// bucket.
type R2Store struct {
	s3           *s3.Client
	bucket       string
	publicDomain string
}

func NewR2Store(ctx context.Context, cfg config.StorageConfig) (*R2Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Store{
		s3:           client,
		bucket:       cfg.R2Bucket,
		publicDomain: cfg.R2PublicDomain,
	}, nil
}

func (s *R2Store) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (s *R2Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicDomain, s.bucket, key)
}

// KeyFromURL handles the configured public domain and r2.dev style URLs
// (anything scheme://host/<object> once the domain prefix is stripped).
func (s *R2Store) KeyFromURL(raw string) (string, error) {
	if s.publicDomain != "" {
		prefix := s.publicDomain + "/" + s.bucket + "/"
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimPrefix(raw, prefix), nil
		}
	}

	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(raw, scheme) {
			withoutScheme := strings.TrimPrefix(raw, scheme)
			slash := strings.Index(withoutScheme, "/")
			if slash == -1 {
				return "", fmt.Errorf("no object path in url")
			}
			return withoutScheme[slash+1:], nil
		}
	}

	return "", fmt.Errorf("not a recognised R2 public url")
}

func (s *R2Store) Delete(ctx context.Context, keys []string) error {
	var firstErr error
	for _, key := range keys {
		if key == "" {
			continue
		}
		_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return firstErr
}
