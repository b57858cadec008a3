package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: "invalid_parameter", Message: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: "invalid_parameter", Message: err.Error()})
	}

	user, err := s.server.RegisterUser(ctx.Request().Context(), usecase.RegisterUserOption{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{
		Data: User{
			ID:        user.ID.String(),
			Username:  user.Username,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
		Message: "User registered",
	})
}

type LoginUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginUserResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s *Server) LoginUser(ctx echo.Context) error {
	var req LoginUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, Res{Error: "invalid_parameter", Message: err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, Res{Error: "invalid_parameter", Message: err.Error()})
	}

	token, user, err := s.server.LoginUser(ctx.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{
		Data: LoginUserResponse{
			Token: token,
			User: User{
				ID:       user.ID.String(),
				Username: user.Username,
			},
		},
		Message: "Logged in",
	})
}
