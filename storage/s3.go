package storage

import (
	"bytes"
	"context"
	"fmt"

	"thesis-hand/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore archiviert Originaldateien. Die Implementierung ist optional.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// S3ObjectStore speichert Objekte in einem S3-kompatiblen Bucket (z.B. Strato HiDrive, MinIO).
type S3ObjectStore struct {
	Client *s3.Client
	Bucket string
}

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Endpunkt.
func NewS3Client(ctx context.Context, endpoint, region, accessKey, secretKey string) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

// NewS3ObjectStore liefert nil, nil wenn kein Bucket konfiguriert ist.
func NewS3ObjectStore(ctx context.Context, cfg *config.Config) (*S3ObjectStore, error) {
	if !cfg.ObjectStorageEnabled() {
		return nil, nil
	}
	client, err := NewS3Client(ctx, cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &S3ObjectStore{Client: client, Bucket: cfg.S3Bucket}, nil
}

func (o *S3ObjectStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := o.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (o *S3ObjectStore) Delete(ctx context.Context, key string) error {
	_, err := o.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.Bucket),
		Key:    aws.String(key),
	})
	return err
}
