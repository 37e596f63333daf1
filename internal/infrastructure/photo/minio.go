package photo

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/heronet/sellnet/internal/core/ports"
)

const (
	keyPrefix   = "products/"
	contentType = "image/jpeg"
)

// Config locates the bucket photos are stored in.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

// MinioHost implements ports.PhotoHost on any S3-compatible object store.
type MinioHost struct {
	client  *minio.Client
	bucket  string
	region  string
	baseURL string
}

func NewMinioHost(cfg Config) (*MinioHost, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	base := cfg.PublicURL
	if base == "" {
		base = client.EndpointURL().String()
	}

	return &MinioHost{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimRight(base, "/"),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (h *MinioHost) EnsureBucket(ctx context.Context) error {
	ok, err := h.client.BucketExists(ctx, h.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if ok {
		return nil
	}
	if err := h.client.MakeBucket(ctx, h.bucket, minio.MakeBucketOptions{Region: h.region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload applies t to the photo and stores the result under a fresh key. The
// key doubles as the photo's public id.
func (h *MinioHost) Upload(ctx context.Context, p ports.PhotoUpload, t ports.Transformation) (*ports.UploadedPhoto, error) {
	data, err := Transform(p.Data, t)
	if err != nil {
		return nil, err
	}

	key := keyPrefix + uuid.NewString() + ".jpg"
	_, err = h.client.PutObject(ctx, h.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": p.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put object: %w", err)
	}

	return &ports.UploadedPhoto{URL: h.objectURL(key), PublicID: key}, nil
}

func (h *MinioHost) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return fmt.Errorf("public id cannot be empty")
	}
	if err := h.client.RemoveObject(ctx, h.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (h *MinioHost) Ping(ctx context.Context) error {
	_, err := h.client.BucketExists(ctx, h.bucket)
	return err
}

func (h *MinioHost) objectURL(key string) string {
	return h.baseURL + "/" + h.bucket + "/" + key
}
