package handlers

import (
	"log/slog"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

type Handlers struct {
	usecase usecase.Usecase
	logger  *slog.Logger
}

func NewHandlers(uc usecase.Usecase, logger *slog.Logger) *Handlers {
	return &Handlers{
		usecase: uc,
		logger:  logger,
	}
}

// Task types.
const (
	TypeExtractColors = "image:extract_colors"
)

type ExtractColorsPayload struct {
	ImageID string `json:"image_id"`
	OwnerID string `json:"owner_id"`
}
