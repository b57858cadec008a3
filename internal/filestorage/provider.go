package filestorage

import (
	"context"
	"fmt"
	"os"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/config"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

// NewFromEnv builds the blob store driver selected by STORAGE_DRIVER.
// The api and the worker share this so both talk to the same backend.
func NewFromEnv(ctx context.Context) (usecase.BlobStorage, error) {
	driver := os.Getenv(config.ENV_KEY_STORAGE_DRIVER)
	switch driver {
	case "", "local":
		return NewLocalStorage(
			os.Getenv(config.ENV_KEY_STORAGE_LOCAL_DIR),
			os.Getenv(config.ENV_KEY_STORAGE_PUBLIC_URL),
		)
	case "minio":
		return NewMinIOStorage(
			os.Getenv(config.ENV_KEY_STORAGE_BUCKET),
			os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
			os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY_ID),
			os.Getenv(config.ENV_KEY_MINIO_SECRET_ACCESS_KEY),
		)
	case "s3":
		return NewS3Storage(ctx,
			os.Getenv(config.ENV_KEY_STORAGE_BUCKET),
			os.Getenv(config.ENV_KEY_AWS_REGION),
		)
	}
	return nil, fmt.Errorf("unknown storage driver %q", driver)
}
