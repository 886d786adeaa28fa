// internal/storage/s3.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"

	"github.com/akeath18/HPE-assets/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// s3Store implements PlanStore against an S3-compatible bucket. The object's
// ETag is the version token and writes use If-Match, so a stale ETag fails
// with a precondition error the same way a stale sha does on GitHub.
type s3Store struct {
	client     *s3.Client
	bucketName string
	objectKey  string
}

// NewS3Store creates a plan store backed by a single S3 object.
func NewS3Store(cfg config.S3Config) (PlanStore, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Force path-style addressing required by most S3-compatible services
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Printf("S3 plan store initialized for endpoint: %s, bucket: %s, key: %s", cfg.Endpoint, cfg.BucketName, cfg.ObjectKey)

	return &s3Store{
		client:     s3Client,
		bucketName: cfg.BucketName,
		objectKey:  cfg.ObjectKey,
	}, nil
}

func (s *s3Store) Read(ctx context.Context) (*Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey),
	})
	if err != nil {
		log.Printf("ERROR: Failed to read plan object '%s': %v", s.objectKey, err)
		return nil, err
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Content: content, Version: aws.ToString(out.ETag)}, nil
}

func (s *s3Store) WriteIfMatch(ctx context.Context, content []byte, version, message string) (*Commit, error) {
	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/json"),
		IfMatch:     aws.String(version),
		Metadata:    map[string]string{"commit-message": message},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return nil, ErrVersionMismatch
		}
		log.Printf("ERROR: Failed to write plan object '%s': %v", s.objectKey, err)
		return nil, err
	}

	sha := aws.ToString(out.ETag)
	return &Commit{SHA: sha}, nil
}
