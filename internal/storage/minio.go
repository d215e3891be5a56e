package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"blogapi/internal/config"
	"blogapi/internal/model"
)

// minioStorage implements Storage using an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a new S3-compatible image store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	m := &minioStorage{client: cli, bucket: cfg.Bucket}
	if err := m.seedDefault(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// seedDefault uploads the placeholder image unless the bucket already holds one.
func (m *minioStorage) seedDefault(ctx context.Context) error {
	_, err := m.client.StatObject(ctx, m.bucket, model.DefaultImage, minio.StatObjectOptions{})
	if err == nil {
		return nil
	}
	if !isMissing(err) {
		return fmt.Errorf("stat default image: %w", err)
	}
	if _, err := m.Put(ctx, model.DefaultImage, defaultImageReader(), PutObjectOptions{
		Size: int64(len(DefaultImageContent)),
	}); err != nil {
		return fmt.Errorf("seed default image: %w", err)
	}
	return nil
}

// Put uploads an image using streaming I/O only.
func (m *minioStorage) Put(ctx context.Context, name string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := CheckName(name); err != nil {
		return ObjectInfo{}, err
	}
	ct := contentTypeOf(name, opt.ContentType)
	info, err := m.client.PutObject(ctx, m.bucket, name, r, opt.Size, minio.PutObjectOptions{
		ContentType:  ct,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("put object: %w", err)
	}
	return ObjectInfo{
		Key:          name,
		Size:         info.Size,
		ContentType:  ct,
		LastModified: time.Now(), // PutObject does not report LastModified
		Metadata:     opt.Metadata,
	}, nil
}

// Get stats the object first so a missing key maps to ErrNotFound before any read.
func (m *minioStorage) Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	if err := CheckName(name); err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if isMissing(err) {
			return nil, ObjectInfo{}, ErrNotFound
		}
		return nil, ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, fmt.Errorf("get object: %w", err)
	}
	return obj, ObjectInfo{
		Key:          name,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}, nil
}

func (m *minioStorage) Delete(ctx context.Context, name string) error {
	if isProtected(name) {
		return nil
	}
	if err := CheckName(name); err != nil {
		return err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}); err != nil && !isMissing(err) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func isMissing(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
