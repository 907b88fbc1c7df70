package minio

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"poliza-service/internal/config"
)

// DocumentBucket holds the scanned policy PDFs uploaded through the wizard.
const DocumentBucket = "poliza-documents"

// MinioClient wraps the MinIO client for the document archive.
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	return &MinioClient{client: minioClient, config: cfg}, nil
}

// EnsureBuckets creates the document bucket when it does not exist yet.
func (c *MinioClient) EnsureBuckets(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, DocumentBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", DocumentBucket, err)
	}
	if !exists {
		err := c.client.MakeBucket(ctx, DocumentBucket, minio.MakeBucketOptions{Region: c.config.MinioLocation})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", DocumentBucket, err)
		}
		log.Printf("Bucket '%s' created", DocumentBucket)
	}
	return nil
}

// StoreDocument archives one uploaded PDF under the given object name.
func (c *MinioClient) StoreDocument(ctx context.Context, objectName string, data []byte) error {
	_, err := c.client.PutObject(ctx, DocumentBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return fmt.Errorf("failed to store document %s: %w", objectName, err)
	}
	return nil
}

// GetDocument retrieves a previously archived upload.
func (c *MinioClient) GetDocument(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, DocumentBucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", objectName, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", objectName, err)
	}
	return buf.Bytes(), nil
}
