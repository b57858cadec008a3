package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

// Image rows are hard-deleted: an image is either active or absent, there
// is no soft-deleted state.
type Image struct {
	ID           uuid.UUID      `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	OwnerID      uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index"`
	StorageKey   string         `gorm:"column:storage_key;type:varchar(255);not null"`
	OverlayProps datatypes.JSON `gorm:"column:overlay_props"`
	TextOverlay  datatypes.JSON `gorm:"column:text_overlay"`
	Colors       datatypes.JSON `gorm:"column:colors"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (Image) TableName() string {
	return "images"
}

func (i Image) toUsecase() usecase.Image {
	return usecase.Image{
		ID:           i.ID,
		OwnerID:      i.OwnerID,
		StorageKey:   i.StorageKey,
		OverlayProps: json.RawMessage(i.OverlayProps),
		TextOverlay:  json.RawMessage(i.TextOverlay),
		Colors:       json.RawMessage(i.Colors),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func (s *service) CreateImage(ctx context.Context, img usecase.Image) (usecase.Image, error) {
	i := Image{
		OwnerID:      img.OwnerID,
		StorageKey:   img.StorageKey,
		OverlayProps: datatypes.JSON(img.OverlayProps),
		TextOverlay:  datatypes.JSON(img.TextOverlay),
	}

	err := s.db.WithContext(ctx).Create(&i).Error
	if err != nil {
		return usecase.Image{}, err
	}

	return i.toUsecase(), nil
}

// GetImage looks up an image scoped by (id, ownerID). A row owned by a
// different user is reported exactly like a missing row.
func (s *service) GetImage(ctx context.Context, id, ownerID uuid.UUID) (usecase.Image, error) {
	var i Image

	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.Image{}, common.ErrNotFound
		}
		return usecase.Image{}, err
	}

	return i.toUsecase(), nil
}

func (s *service) ListImages(ctx context.Context, ownerID uuid.UUID) ([]usecase.Image, int, error) {
	var (
		imgs  []Image
		count int64
	)

	db := s.db.WithContext(ctx).Model(Image{}).Where("owner_id = ?", ownerID)

	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at DESC").Find(&imgs).Error; err != nil {
		return nil, 0, err
	}

	list := make([]usecase.Image, 0, len(imgs))
	for _, i := range imgs {
		list = append(list, i.toUsecase())
	}

	return list, int(count), nil
}

func (s *service) UpdateImage(ctx context.Context, img usecase.Image) (usecase.Image, error) {
	res := s.db.WithContext(ctx).Model(Image{}).
		Where("id = ? AND owner_id = ?", img.ID, img.OwnerID).
		Updates(map[string]any{
			"storage_key":   img.StorageKey,
			"overlay_props": datatypes.JSON(img.OverlayProps),
			"text_overlay":  datatypes.JSON(img.TextOverlay),
		})
	if res.Error != nil {
		return usecase.Image{}, res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.Image{}, common.ErrNotFound
	}

	return s.GetImage(ctx, img.ID, img.OwnerID)
}

func (s *service) DeleteImage(ctx context.Context, id, ownerID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&Image{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (s *service) UpdateImageColors(ctx context.Context, id, ownerID uuid.UUID, colors []byte) error {
	res := s.db.WithContext(ctx).Model(Image{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("colors", datatypes.JSON(colors))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}
