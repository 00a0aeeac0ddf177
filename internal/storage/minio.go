package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kmonkmol38/DashNew1/internal/config"
)

const archivePrefix = "workbooks/"

// MinioArchive implements WorkbookArchive against any S3-compatible
// endpoint.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive builds a client from the archive config.
func NewMinioArchive(cfg config.StorageConfig) (*MinioArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client failed: %w", err)
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// Archive stores the workbook under a timestamped key so successive uploads
// of the same file name never overwrite each other.
func (a *MinioArchive) Archive(ctx context.Context, fileName string, data []byte) error {
	key := path.Join(archivePrefix,
		fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102T150405"), fileName))

	_, err := a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"})
	if err != nil {
		return fmt.Errorf("archive upload failed: %w", err)
	}
	return nil
}

// List returns the archived workbook objects.
func (a *MinioArchive) List(ctx context.Context) ([]ObjectInfo, error) {
	var out []ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    archivePrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("archive list failed: %w", obj.Err)
		}
		out = append(out, ObjectInfo{Key: obj.Key, Size: obj.Size})
	}
	return out, nil
}
