package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/config"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/database"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/filestorage"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/queue"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/transform"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

// Service is the usecase surface the HTTP layer depends on.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error

	RegisterUser(context.Context, usecase.RegisterUserOption) (usecase.User, error)
	LoginUser(ctx context.Context, username, password string) (string, usecase.User, error)
	VerifyToken(token string) (uuid.UUID, error)

	CreateImage(context.Context, usecase.CreateImageOption) (usecase.Image, error)
	CreateRotatedImage(ctx context.Context, opt usecase.CreateImageOption, degrees int) (usecase.Image, error)
	CreateMirroredImage(ctx context.Context, opt usecase.CreateImageOption, axis transform.Axis) (usecase.Image, error)
	ReplaceImage(context.Context, usecase.ReplaceImageOption) (usecase.Image, error)
	GetImage(ctx context.Context, id uuid.UUID) (usecase.Image, error)
	ListImages(context.Context) ([]usecase.Image, int, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
}

type Server struct {
	server    Service
	validator *validator.Validate
	logger    *slog.Logger

	// staticRoot is set when the local storage driver is active; the api
	// then serves stored blobs itself.
	staticRoot string
}

// App bundles the http server with the resources it owns.
type App struct {
	httpServer  *http.Server
	sv          Service
	queueClient *queue.Client
	logger      *slog.Logger
}

func NewApp() (*App, error) {
	logger := newLogger()

	repo, err := database.New(logger)
	if err != nil {
		return nil, err
	}

	fsp, err := filestorage.NewFromEnv(context.Background())
	if err != nil {
		return nil, err
	}

	qc := queue.NewClient(
		os.Getenv(config.ENV_KEY_REDIS_ADDR),
		os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
	)

	tokenTTL := 24 * time.Hour
	if h, err := strconv.Atoi(os.Getenv(config.ENV_KEY_JWT_EXPIRE_HOURS)); err == nil {
		tokenTTL = time.Duration(h) * time.Hour
	}

	sv := usecase.New(repo, fsp, qc, logger,
		[]byte(os.Getenv(config.ENV_KEY_JWT_SECRET)), tokenTTL)

	s := &Server{
		server:    sv,
		validator: validator.New(),
		logger:    logger,
	}
	if ls, ok := fsp.(*filestorage.LocalStorage); ok {
		s.staticRoot = ls.Root()
	}

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &App{
		httpServer:  httpServer,
		sv:          sv,
		queueClient: qc,
		logger:      logger,
	}, nil
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) ListenAndServe() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := a.queueClient.Close(); err != nil {
		a.logger.Error("failed to close queue client", slog.String("err", err.Error()))
	}
	return a.sv.Close()
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
