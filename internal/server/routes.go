package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(NewEchoLogger(s.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("20M"))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/api/health", s.healthHandler)

	// Local driver serves stored blobs directly; remote drivers resolve
	// to their own endpoints.
	if s.staticRoot != "" {
		e.Static("/uploads", s.staticRoot)
	}

	var authGroup = e.Group("/api/v1/auth")
	authGroup.POST("/register", s.RegisterUser)
	authGroup.POST("/login", s.LoginUser)

	var imageGroup = e.Group("/api/v1/images", s.AuthMiddleware)
	imageGroup.POST("", s.UploadImage)
	imageGroup.POST("/rotate", s.RotateImage)
	imageGroup.POST("/mirror", s.MirrorImage)
	imageGroup.GET("", s.ListImages)
	imageGroup.GET("/:id", s.GetImage)
	imageGroup.PUT("/:id", s.ReplaceImage)
	imageGroup.DELETE("/:id", s.DeleteImage)

	return e
}
