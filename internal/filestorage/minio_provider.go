package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

func NewMinIOStorage(bucket, endpoint, accessKeyID, secretAccessKey string) (*MinIOStorage, error) {
	m, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: true,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing minio client: %w", err)
	}
	return &MinIOStorage{
		client: m,
		bucket: bucket,
	}, nil
}

type MinIOStorage struct {
	client *minio.Client
	bucket string
}

func (f *MinIOStorage) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := newObjectKey(name)
	_, err := f.client.PutObject(ctx, f.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (f *MinIOStorage) ResolveURL(_ context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/%s/%s", f.client.EndpointURL(), f.bucket, key), nil
}

func (f *MinIOStorage) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := f.client.GetObject(ctx, f.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat forces the existence check now.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", common.ErrObjectNotFound, key)
		}
		return nil, err
	}
	return obj, nil
}

func (f *MinIOStorage) Delete(ctx context.Context, key string) error {
	// RemoveObject succeeds silently for absent keys; stat first so the
	// caller can tell "already gone" from an I/O failure.
	if _, err := f.client.StatObject(ctx, f.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return fmt.Errorf("%w: %s", common.ErrObjectNotFound, key)
		}
		return err
	}
	return f.client.RemoveObject(ctx, f.bucket, key, minio.RemoveObjectOptions{})
}
