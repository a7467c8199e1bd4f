package storage

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Presigner issues time-boxed upload URLs for object storage. Keeping the
// contract this narrow lets upload validation run against a fake in tests.
type Presigner interface {
	// PresignPut returns a signed URL that allows a single PUT of the given
	// content type to the given object key until the TTL elapses.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}

type s3Presigner struct {
	presign *s3.PresignClient
	bucket  string
}

// NewS3Presigner creates an S3-backed Presigner. Credentials come from the
// default AWS credential chain (env, shared config, instance role).
func NewS3Presigner(ctx context.Context, bucket, region string) (Presigner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &s3Presigner{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

func (p *s3Presigner) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &p.bucket,
		Key:         &key,
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign put object: %w", err)
	}

	return req.URL, nil
}

// PublicURL derives the publicly reachable URL of an uploaded object.
func PublicURL(bucket, region, objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, objectKey)
}
