package sync

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const exportContentType = "application/x-ndjson"

// S3Destination uploads the plan export to a single object in an
// S3-compatible bucket, overwriting it on every sync.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination builds an S3 destination from the ambient AWS
// credential chain. A non-empty endpoint switches to path-style
// addressing so MinIO and similar stores work.
func NewS3Destination(ctx context.Context, bucket, key, region, endpoint string) (*S3Destination, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(cfg, s3opts...),
		bucket: bucket,
		key:    key,
	}, nil
}

func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(exportContentType),
	})
	if err != nil {
		return fmt.Errorf("uploading plan export to s3://%s/%s: %w", d.bucket, d.key, err)
	}
	return nil
}
