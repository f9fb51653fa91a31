// Package storage provides attachment upload functionality backed by
// S3-compatible services with an ordered fallback chain.
package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"taskflow/internal/models"
)

const presignedURLExpiry = 24 * time.Hour

// S3Uploader stores attachments in an S3-compatible bucket.
type S3Uploader struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// NewS3Uploader creates a new S3 uploader configured for the given endpoint.
func NewS3Uploader(endpoint, accessKey, secretKey, bucket string, useSSL bool) *S3Uploader {
	protocol := "http"
	if useSSL {
		protocol = "https"
	}
	endpointURL := protocol + "://" + endpoint

	// Custom resolver for MinIO/S3-compatible endpoints
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpointURL,
			HostnameImmutable: true,
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"), // MinIO requires a region
		config.WithEndpointResolverWithOptions(customResolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		log.Fatalf("Failed to load S3 config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true // Required for MinIO
	})

	log.Printf("Connected to S3 at %s", endpointURL)

	return &S3Uploader{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        bucket,
	}
}

// Upload stores the file under a fresh key in the given folder and returns
// an attachment descriptor with a pre-signed URL.
func (s *S3Uploader) Upload(ctx context.Context, file Upload, folder string) (*models.Attachment, error) {
	if _, err := file.Content.Seek(0, 0); err != nil {
		return nil, err
	}

	key := objectKey(folder, file.Name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          file.Content,
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	request, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignedURLExpiry))
	if err != nil {
		return nil, fmt.Errorf("s3 presign: %w", err)
	}

	return &models.Attachment{
		URL:         request.URL,
		Key:         key,
		Name:        file.Name,
		Size:        file.Size,
		ContentType: file.ContentType,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

// objectKey builds a collision-free storage key preserving the extension.
func objectKey(folder, name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
}
