package server

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/common"
)

// errJSON maps a usecase error to a status code and a machine-stable
// reason string. Internal detail is logged here and never echoed to the
// caller.
func (s *Server) errJSON(ctx echo.Context, err error) error {
	var (
		status  = 500
		reason  = "internal_error"
		message = "Something went wrong"
	)

	switch {
	case errors.Is(err, common.ErrInvalidParameter):
		status, reason, message = 400, "invalid_parameter", "Invalid request parameter"
	case errors.Is(err, common.ErrInvalidCredentials):
		status, reason, message = 401, "invalid_credentials", "Invalid username or password"
	case errors.Is(err, common.ErrInvalidToken):
		status, reason, message = 401, "invalid_token", "Invalid token"
	case errors.Is(err, common.ErrNotFound):
		status, reason, message = 404, "not_found", "Image not found"
	case errors.Is(err, common.ErrDuplicateUsername):
		status, reason, message = 409, "username_taken", "Username already taken"
	case errors.Is(err, common.ErrUnprocessableImage):
		reason, message = "unprocessable_image", "Could not process image"
	case errors.Is(err, common.ErrStorageUnavailable):
		reason, message = "storage_unavailable", "Storage temporarily unavailable"
	}

	if status >= 500 {
		s.logger.Error("request failed",
			slog.String("uri", ctx.Request().RequestURI),
			slog.String("err", err.Error()))
	}

	return ctx.JSON(status, Res{Error: reason, Message: message})
}
