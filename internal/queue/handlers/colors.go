package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// HandleExtractColors processes a dominant-color extraction task. The
// colors column is advisory: the usecase swallows its own failures, so a
// non-nil return here only means the payload itself was malformed.
func (h *Handlers) HandleExtractColors(ctx context.Context, task *asynq.Task) error {
	var p ExtractColorsPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshaling payload: %v: %w", err, asynq.SkipRetry)
	}

	imageID, err := uuid.Parse(p.ImageID)
	if err != nil {
		return fmt.Errorf("parsing image id: %v: %w", err, asynq.SkipRetry)
	}
	ownerID, err := uuid.Parse(p.OwnerID)
	if err != nil {
		return fmt.Errorf("parsing owner id: %v: %w", err, asynq.SkipRetry)
	}

	h.logger.Info("extracting colors", slog.String("image_id", p.ImageID))
	return h.usecase.ProcessImageColors(ctx, imageID, ownerID)
}
