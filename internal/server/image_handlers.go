package server

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/transform"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

type Image struct {
	ID           string          `json:"id"`
	StorageKey   string          `json:"storage_key"`
	URL          string          `json:"url"`
	OverlayProps json.RawMessage `json:"overlay_props"`
	TextOverlay  json.RawMessage `json:"text_overlay"`
	Colors       json.RawMessage `json:"colors,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

func toImage(img usecase.Image) Image {
	return Image{
		ID:           img.ID.String(),
		StorageKey:   img.StorageKey,
		URL:          img.URL,
		OverlayProps: img.OverlayProps,
		TextOverlay:  img.TextOverlay,
		Colors:       img.Colors,
		CreatedAt:    img.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    img.UpdatedAt.Format(time.RFC3339),
	}
}

// readUploadFile pulls the multipart "file" field. A missing file is a
// caller error, reported before any storage interaction.
func readUploadFile(ctx echo.Context) ([]byte, string, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: no file provided", common.ErrInvalidParameter)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

// overlayField reads an optional JSON form field. The value is stored
// verbatim, so the only check is that it is well-formed JSON.
func overlayField(ctx echo.Context, name string) (json.RawMessage, error) {
	v := ctx.FormValue(name)
	if v == "" {
		return nil, nil
	}
	if !json.Valid([]byte(v)) {
		return nil, fmt.Errorf("%w: %s must be valid JSON", common.ErrInvalidParameter, name)
	}
	return json.RawMessage(v), nil
}

func (s *Server) UploadImage(ctx echo.Context) error {
	data, name, err := readUploadFile(ctx)
	if err != nil {
		return s.errJSON(ctx, err)
	}
	props, err := overlayField(ctx, "overlay_props")
	if err != nil {
		return s.errJSON(ctx, err)
	}
	text, err := overlayField(ctx, "text_overlay")
	if err != nil {
		return s.errJSON(ctx, err)
	}

	img, err := s.server.CreateImage(ctx.Request().Context(), usecase.CreateImageOption{
		Name:         name,
		Data:         data,
		OverlayProps: props,
		TextOverlay:  text,
	})
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toImage(img), Message: "Image uploaded"})
}

func (s *Server) RotateImage(ctx echo.Context) error {
	degrees, err := transform.ParseDegrees(ctx.FormValue("degrees"))
	if err != nil {
		return s.errJSON(ctx, err)
	}
	data, name, err := readUploadFile(ctx)
	if err != nil {
		return s.errJSON(ctx, err)
	}

	img, err := s.server.CreateRotatedImage(ctx.Request().Context(), usecase.CreateImageOption{
		Name: name,
		Data: data,
	}, degrees)
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toImage(img), Message: "Image rotated and uploaded"})
}

func (s *Server) MirrorImage(ctx echo.Context) error {
	axis, err := transform.ParseAxis(ctx.FormValue("axis"))
	if err != nil {
		return s.errJSON(ctx, err)
	}
	data, name, err := readUploadFile(ctx)
	if err != nil {
		return s.errJSON(ctx, err)
	}

	img, err := s.server.CreateMirroredImage(ctx.Request().Context(), usecase.CreateImageOption{
		Name: name,
		Data: data,
	}, axis)
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toImage(img), Message: "Image mirrored and uploaded"})
}

func (s *Server) ListImages(ctx echo.Context) error {
	imgs, total, err := s.server.ListImages(ctx.Request().Context())
	if err != nil {
		return s.errJSON(ctx, err)
	}

	list := make([]Image, 0, len(imgs))
	for _, img := range imgs {
		list = append(list, toImage(img))
	}

	return ctx.JSON(200, Res{Data: list, Meta: &Meta{Total: total}})
}

func (s *Server) GetImage(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return s.errJSON(ctx, fmt.Errorf("%w: invalid image id", common.ErrInvalidParameter))
	}

	img, err := s.server.GetImage(ctx.Request().Context(), id)
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toImage(img)})
}

func (s *Server) ReplaceImage(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return s.errJSON(ctx, fmt.Errorf("%w: invalid image id", common.ErrInvalidParameter))
	}

	// The file is optional on replace: overlay metadata can change on its
	// own.
	var (
		data []byte
		name string
	)
	if _, ferr := ctx.FormFile("file"); ferr == nil {
		data, name, err = readUploadFile(ctx)
		if err != nil {
			return s.errJSON(ctx, err)
		}
	}

	props, err := overlayField(ctx, "overlay_props")
	if err != nil {
		return s.errJSON(ctx, err)
	}
	text, err := overlayField(ctx, "text_overlay")
	if err != nil {
		return s.errJSON(ctx, err)
	}

	img, err := s.server.ReplaceImage(ctx.Request().Context(), usecase.ReplaceImageOption{
		ID:           id,
		Name:         name,
		Data:         data,
		OverlayProps: props,
		TextOverlay:  text,
	})
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toImage(img), Message: "Image updated"})
}

func (s *Server) DeleteImage(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return s.errJSON(ctx, fmt.Errorf("%w: invalid image id", common.ErrInvalidParameter))
	}

	if err := s.server.DeleteImage(ctx.Request().Context(), id); err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "Image deleted"})
}
