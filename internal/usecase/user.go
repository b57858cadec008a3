package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RegisterUserOption struct {
	Username string
	Password string
}

func (u Usecase) RegisterUser(ctx context.Context, opt RegisterUserOption) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(opt.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	sctx, cancel := storageCtx(ctx)
	defer cancel()
	user, err := u.repo.CreateUser(sctx, User{
		Username:     opt.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return User{}, wrapStorage(err)
	}

	user.PasswordHash = ""
	return user, nil
}

// LoginUser verifies credentials and mints an access token. An unknown
// username and a wrong password produce the same error.
func (u Usecase) LoginUser(ctx context.Context, username, password string) (string, User, error) {
	sctx, cancel := storageCtx(ctx)
	defer cancel()
	user, err := u.repo.GetUserByUsername(sctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", User{}, common.ErrInvalidCredentials
		}
		return "", User{}, wrapStorage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", User{}, common.ErrInvalidCredentials
	}

	token, err := u.GenerateToken(user.ID)
	if err != nil {
		return "", User{}, err
	}

	user.PasswordHash = ""
	return token, user, nil
}
