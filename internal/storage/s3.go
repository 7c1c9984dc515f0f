package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// VoucherArchive stores generated voucher PDFs in an S3 bucket so the back
// office keeps a copy of every document sent to a client.
type VoucherArchive struct {
	bucket string
	client *s3.Client
}

// NewVoucherArchive creates an archive backed by the given bucket, using the
// default AWS credential chain.
func NewVoucherArchive(ctx context.Context, region, bucket string) (*VoucherArchive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("voucher archive bucket is not configured")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws configuration: %w", err)
	}

	return &VoucherArchive{
		bucket: bucket,
		client: s3.NewFromConfig(cfg),
	}, nil
}

// Store uploads a voucher PDF and returns its object URL.
func (a *VoucherArchive) Store(ctx context.Context, reservationID string, pdf []byte) (string, error) {
	key := fmt.Sprintf("vouchers/%s.pdf", reservationID)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("upload voucher to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", a.bucket, key), nil
}
