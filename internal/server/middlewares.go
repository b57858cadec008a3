package server

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/config"
)

// AuthMiddleware checks the Authorization header, verifies the bearer
// token and puts the resolved owner id into the downstream context. Every
// image route runs behind it; handlers never see an unauthenticated
// request.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(config.HEADER_KEY_AUTHORIZATION)

		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			return c.JSON(401, Res{
				Error:   "unauthenticated",
				Message: "Authorization header is required",
			})
		}

		userID, err := s.server.VerifyToken(strings.TrimPrefix(auth, prefix))
		if err != nil {
			return c.JSON(401, Res{
				Error:   "invalid_token",
				Message: "Invalid token",
			})
		}

		ctx := context.WithValue(c.Request().Context(), config.CTX_KEY_USER_ID, userID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
