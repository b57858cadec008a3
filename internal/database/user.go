package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

type User struct {
	ID           uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	Username     string    `gorm:"column:username;type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`

	Images []Image `gorm:"foreignKey:OwnerID"`
}

func (User) TableName() string {
	return "users"
}

const pgUniqueViolation = "23505"

func (s *service) CreateUser(ctx context.Context, user usecase.User) (usecase.User, error) {
	u := User{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}

	err := s.db.WithContext(ctx).Create(&u).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.User{}, fmt.Errorf("%w: %s", common.ErrDuplicateUsername, user.Username)
		}
		return usecase.User{}, err
	}

	return usecase.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}

func (s *service) GetUserByUsername(ctx context.Context, username string) (usecase.User, error) {
	var u User

	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.User{}, common.ErrNotFound
		}
		return usecase.User{}, err
	}

	return usecase.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (usecase.User, error) {
	var u User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.User{}, common.ErrNotFound
		}
		return usecase.User{}, err
	}

	return usecase.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, nil
}
