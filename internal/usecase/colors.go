package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"log/slog"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cenkalti/dominantcolor"
	"github.com/google/uuid"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

// ExtractColors decodes an image and returns its four dominant colors as
// a JSON map of rank to RGBA.
func ExtractColors(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	colors := make(map[int][4]uint8)
	for i, c := range dominantcolor.FindN(img, 4) {
		colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
	}

	return json.Marshal(colors)
}

// ProcessImageColors runs in the worker: load the blob, extract dominant
// colors, store them on the image row. The colors column is advisory, so
// every failure path logs and drops the task instead of retrying.
func (u Usecase) ProcessImageColors(ctx context.Context, imageID, ownerID uuid.UUID) error {
	sctx, cancel := storageCtx(ctx)
	img, err := u.repo.GetImage(sctx, imageID, ownerID)
	cancel()
	if err != nil {
		// The image may have been replaced or deleted since enqueue.
		if !errors.Is(err, common.ErrNotFound) {
			u.logger.Warn("color extraction: image lookup failed",
				slog.String("image_id", imageID.String()),
				slog.String("err", err.Error()))
		}
		return nil
	}

	sctx, cancel = storageCtx(ctx)
	rc, err := u.fileStorageProvider.GetReader(sctx, img.StorageKey)
	if err != nil {
		cancel()
		u.logger.Warn("color extraction: blob read failed",
			slog.String("storage_key", img.StorageKey),
			slog.String("err", err.Error()))
		return nil
	}

	// Remote drivers stream the body over sctx, so it must outlive the
	// decode.
	colors, err := ExtractColors(rc)
	rc.Close()
	cancel()
	if err != nil {
		u.logger.Warn("color extraction: decode failed",
			slog.String("storage_key", img.StorageKey),
			slog.String("err", err.Error()))
		return nil
	}

	sctx, cancel = storageCtx(ctx)
	defer cancel()
	if err := u.repo.UpdateImageColors(sctx, imageID, ownerID, colors); err != nil && !errors.Is(err, common.ErrNotFound) {
		u.logger.Warn("color extraction: colors update failed",
			slog.String("image_id", imageID.String()),
			slog.String("err", err.Error()))
	}
	return nil
}
