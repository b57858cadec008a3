package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/config"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/transform"
)

// Image is a stored picture with its overlay metadata. OverlayProps and
// TextOverlay are free-form JSON attached to the visual asset; the
// lifecycle manager stores and returns them verbatim and never interprets
// them.
type Image struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	StorageKey   string
	URL          string
	OverlayProps json.RawMessage
	TextOverlay  json.RawMessage
	Colors       json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Overlay defaults, applied when the caller sends none and after every
// transform-and-create: transformed geometry invalidates prior overlay
// coordinates, so overlays reset to a centered, neutral state.
var (
	DefaultOverlayProps = json.RawMessage(`{"x":0.5,"y":0.5,"scale":1,"opacity":1}`)
	DefaultTextOverlay  = json.RawMessage(`{"text":"","font":"","size":24,"color":"#ffffff"}`)
)

func ownerIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	ownerID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user id not found in context")
	}
	return ownerID, nil
}

type CreateImageOption struct {
	Name         string
	Data         []byte
	OverlayProps json.RawMessage
	TextOverlay  json.RawMessage
}

// CreateImage stores the payload as a new blob, then inserts the metadata
// row pointing at it. If the insert fails after the blob write the blob is
// left orphaned: it is logged, never rolled back.
func (u Usecase) CreateImage(ctx context.Context, opt CreateImageOption) (Image, error) {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return Image{}, err
	}
	if len(opt.Data) == 0 {
		return Image{}, fmt.Errorf("%w: no file provided", common.ErrInvalidParameter)
	}

	props := opt.OverlayProps
	if len(props) == 0 {
		props = DefaultOverlayProps
	}
	text := opt.TextOverlay
	if len(text) == 0 {
		text = DefaultTextOverlay
	}

	return u.createImage(ctx, ownerID, opt.Name, opt.Data, props, text)
}

// CreateRotatedImage rotates the payload, then persists the result with
// default overlays. Transform validation happens before any storage write.
func (u Usecase) CreateRotatedImage(ctx context.Context, opt CreateImageOption, degrees int) (Image, error) {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return Image{}, err
	}
	if len(opt.Data) == 0 {
		return Image{}, fmt.Errorf("%w: no file provided", common.ErrInvalidParameter)
	}

	out, err := transform.Rotate(opt.Data, degrees)
	if err != nil {
		return Image{}, err
	}

	return u.createImage(ctx, ownerID, opt.Name, out, DefaultOverlayProps, DefaultTextOverlay)
}

// CreateMirroredImage mirrors the payload along the given axis, then
// persists the result with default overlays.
func (u Usecase) CreateMirroredImage(ctx context.Context, opt CreateImageOption, axis transform.Axis) (Image, error) {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return Image{}, err
	}
	if len(opt.Data) == 0 {
		return Image{}, fmt.Errorf("%w: no file provided", common.ErrInvalidParameter)
	}

	out, err := transform.Mirror(opt.Data, axis)
	if err != nil {
		return Image{}, err
	}

	return u.createImage(ctx, ownerID, opt.Name, out, DefaultOverlayProps, DefaultTextOverlay)
}

func (u Usecase) createImage(ctx context.Context, ownerID uuid.UUID, name string, data []byte, props, text json.RawMessage) (Image, error) {
	sctx, cancel := storageCtx(ctx)
	key, err := u.fileStorageProvider.Put(sctx, name, data)
	cancel()
	if err != nil {
		return Image{}, wrapStorage(err)
	}

	sctx, cancel = storageCtx(ctx)
	img, err := u.repo.CreateImage(sctx, Image{
		OwnerID:      ownerID,
		StorageKey:   key,
		OverlayProps: props,
		TextOverlay:  text,
	})
	cancel()
	if err != nil {
		// The blob is already durable but nothing references it. Accepted
		// gap: log the orphan, do not attempt a rollback.
		u.logger.Error("image insert failed after blob write, blob orphaned",
			slog.String("storage_key", key),
			slog.String("owner_id", ownerID.String()),
			slog.String("err", err.Error()))
		return Image{}, wrapStorage(err)
	}

	u.enqueueExtractColors(ctx, img)

	img.URL, _ = u.fileStorageProvider.ResolveURL(ctx, img.StorageKey)
	return img, nil
}

type ReplaceImageOption struct {
	ID           uuid.UUID
	Name         string
	Data         []byte // nil means metadata-only replace
	OverlayProps json.RawMessage
	TextOverlay  json.RawMessage
}

// ReplaceImage repoints an owned image at new bytes and/or new overlay
// metadata. Ordering: verify ownership, store the new blob under a fresh
// key, update the row, then best-effort delete the superseded blob. The
// new blob is never deleted before the row update succeeds; a failed
// old-blob delete is logged and swallowed because the user-visible state
// is already consistent.
func (u Usecase) ReplaceImage(ctx context.Context, opt ReplaceImageOption) (Image, error) {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return Image{}, err
	}

	sctx, cancel := storageCtx(ctx)
	existing, err := u.repo.GetImage(sctx, opt.ID, ownerID)
	cancel()
	if err != nil {
		return Image{}, wrapStorage(err)
	}

	newKey := existing.StorageKey
	if len(opt.Data) > 0 {
		sctx, cancel = storageCtx(ctx)
		newKey, err = u.fileStorageProvider.Put(sctx, opt.Name, opt.Data)
		cancel()
		if err != nil {
			return Image{}, wrapStorage(err)
		}
	}

	props := opt.OverlayProps
	if len(props) == 0 {
		props = existing.OverlayProps
	}
	text := opt.TextOverlay
	if len(text) == 0 {
		text = existing.TextOverlay
	}

	sctx, cancel = storageCtx(ctx)
	img, err := u.repo.UpdateImage(sctx, Image{
		ID:           opt.ID,
		OwnerID:      ownerID,
		StorageKey:   newKey,
		OverlayProps: props,
		TextOverlay:  text,
	})
	cancel()
	if err != nil {
		if newKey != existing.StorageKey {
			u.logger.Error("image update failed after blob write, blob orphaned",
				slog.String("storage_key", newKey),
				slog.String("image_id", opt.ID.String()),
				slog.String("err", err.Error()))
		}
		return Image{}, wrapStorage(err)
	}

	if newKey != existing.StorageKey {
		u.deleteBlob(ctx, existing.StorageKey)
		u.enqueueExtractColors(ctx, img)
	}

	img.URL, _ = u.fileStorageProvider.ResolveURL(ctx, img.StorageKey)
	return img, nil
}

// DeleteImage removes an owned image: verify ownership, best-effort blob
// delete, then row delete. Row deletion is not conditioned on the blob
// delete succeeding.
func (u Usecase) DeleteImage(ctx context.Context, id uuid.UUID) error {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return err
	}

	sctx, cancel := storageCtx(ctx)
	existing, err := u.repo.GetImage(sctx, id, ownerID)
	cancel()
	if err != nil {
		return wrapStorage(err)
	}

	u.deleteBlob(ctx, existing.StorageKey)

	sctx, cancel = storageCtx(ctx)
	defer cancel()
	return wrapStorage(u.repo.DeleteImage(sctx, id, ownerID))
}

func (u Usecase) GetImage(ctx context.Context, id uuid.UUID) (Image, error) {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return Image{}, err
	}

	sctx, cancel := storageCtx(ctx)
	defer cancel()
	img, err := u.repo.GetImage(sctx, id, ownerID)
	if err != nil {
		return Image{}, wrapStorage(err)
	}

	img.URL, _ = u.fileStorageProvider.ResolveURL(ctx, img.StorageKey)
	return img, nil
}

func (u Usecase) ListImages(ctx context.Context) ([]Image, int, error) {
	ownerID, err := ownerIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	sctx, cancel := storageCtx(ctx)
	defer cancel()
	imgs, total, err := u.repo.ListImages(sctx, ownerID)
	if err != nil {
		return nil, 0, wrapStorage(err)
	}

	list := make([]Image, 0, len(imgs))
	for _, img := range imgs {
		img.URL, _ = u.fileStorageProvider.ResolveURL(ctx, img.StorageKey)
		list = append(list, img)
	}
	return list, total, nil
}

// deleteBlob is the best-effort cleanup step shared by replace and delete.
// It never fails the enclosing request; an already-absent key logs apart
// from a real I/O failure. Detached from request cancellation so an
// aborted request does not strand a blob that was about to be reclaimed.
func (u Usecase) deleteBlob(ctx context.Context, key string) {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.STORAGE_TIMEOUT_SECONDS*time.Second)
	defer cancel()

	err := u.fileStorageProvider.Delete(sctx, key)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrObjectNotFound):
		u.logger.Info("blob already absent during cleanup", slog.String("storage_key", key))
	default:
		u.logger.Error("blob cleanup failed, blob may linger",
			slog.String("storage_key", key),
			slog.String("err", err.Error()))
	}
}

func (u Usecase) enqueueExtractColors(ctx context.Context, img Image) {
	if u.taskQueue == nil {
		return
	}
	if err := u.taskQueue.EnqueueExtractColors(ctx, img.ID, img.OwnerID); err != nil {
		u.logger.Warn("failed to enqueue color extraction",
			slog.String("image_id", img.ID.String()),
			slog.String("err", err.Error()))
	}
}
