package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FileStorage accepts an uploaded byte stream and returns a stable,
// collision-resistant URL for it. Names are prefixed with a random
// identifier so repeated uploads of the same filename never overwrite
// each other.
type FileStorage interface {
	Save(ctx context.Context, kind, filename string, reader io.Reader, size int64) (string, error)
}

// StoredName builds the collision-resistant object name for an upload.
func StoredName(filename string) string {
	return uuid.New().String() + "_" + filepath.Base(filename)
}

type localStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage stores uploads on disk under dir/<kind>/ and returns
// URLs under urlPrefix (served statically by the HTTP layer).
func NewLocalStorage(dir, urlPrefix string) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localStorage{dir: dir, urlPrefix: urlPrefix}, nil
}

func (l *localStorage) Save(ctx context.Context, kind, filename string, reader io.Reader, size int64) (string, error) {
	name := StoredName(filename)
	subdir := filepath.Join(l.dir, kind)
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	out, err := os.Create(filepath.Join(subdir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return path.Join(l.urlPrefix, kind, name), nil
}

type minioStorage struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioStorage stores uploads in a MinIO/S3 bucket, creating the
// bucket when missing.
func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (FileStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	found, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &minioStorage{client: client, bucket: bucket, endpoint: endpoint, useSSL: useSSL}, nil
}

func (m *minioStorage) Save(ctx context.Context, kind, filename string, reader io.Reader, size int64) (string, error) {
	objectName := path.Join(kind, StoredName(filename))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if m.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.endpoint, m.bucket, objectName), nil
}
