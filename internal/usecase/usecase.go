package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/config"
)

func New(repo Repository, fsp BlobStorage, q TaskEnqueuer, logger *slog.Logger, jwtSecret []byte, tokenTTL time.Duration) Usecase {
	return Usecase{
		repo:                repo,
		fileStorageProvider: fsp,
		taskQueue:           q,
		logger:              logger,
		jwtSecret:           jwtSecret,
		tokenTTL:            tokenTTL,
	}
}

// Repository is the metadata store contract, implemented by database.
// Image lookups are always scoped by (id, ownerID); a mismatched owner is
// reported as common.ErrNotFound, same as absence.
type Repository interface {
	Health() map[string]string
	Close() error

	CreateUser(context.Context, User) (User, error)
	GetUserByUsername(context.Context, string) (User, error)
	GetUserByID(context.Context, uuid.UUID) (User, error)

	CreateImage(context.Context, Image) (Image, error)
	GetImage(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (Image, error)
	ListImages(ctx context.Context, ownerID uuid.UUID) ([]Image, int, error)
	UpdateImage(context.Context, Image) (Image, error)
	DeleteImage(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
	UpdateImageColors(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, colors []byte) error
}

// BlobStorage is the blob store driver contract, implemented by the
// filestorage providers. Drivers must be safe for concurrent use.
type BlobStorage interface {
	// Put stores data under a fresh globally-unique key derived from name
	// and returns the key. Concurrent puts with the same name never
	// overwrite each other.
	Put(ctx context.Context, name string, data []byte) (string, error)
	// ResolveURL returns a stable address for a stored key, usable by a
	// viewer without further driver involvement.
	ResolveURL(ctx context.Context, key string) (string, error)
	GetReader(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a key. An already-absent key is reported as
	// common.ErrObjectNotFound so callers can log it apart from I/O
	// failures.
	Delete(ctx context.Context, key string) error
}

// TaskEnqueuer hands background work to the queue. Enqueueing is
// best-effort from the lifecycle manager's point of view.
type TaskEnqueuer interface {
	EnqueueExtractColors(ctx context.Context, imageID uuid.UUID, ownerID uuid.UUID) error
}

type Usecase struct {
	repo                Repository
	fileStorageProvider BlobStorage
	taskQueue           TaskEnqueuer
	logger              *slog.Logger
	jwtSecret           []byte
	tokenTTL            time.Duration
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}

// storageCtx bounds a blob store or metadata store call. A backend that
// does not answer within the window fails the call instead of hanging the
// request.
func storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.STORAGE_TIMEOUT_SECONDS*time.Second)
}

// wrapStorage folds backend failures into ErrStorageUnavailable while
// letting caller-meaningful errors pass through untouched.
func wrapStorage(err error) error {
	if err == nil ||
		errors.Is(err, common.ErrNotFound) ||
		errors.Is(err, common.ErrDuplicateUsername) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
}
