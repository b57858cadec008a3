package queue

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/config"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/database"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/filestorage"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/queue/handlers"
	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

// Server wraps asynq.Server for processing tasks
type Server struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
}

// Worker represents a worker application with all its dependencies
type Worker struct {
	server *Server
	uc     usecase.Usecase
	logger *slog.Logger
}

// NewWorker creates a fully configured worker with all dependencies
func NewWorker() (*Worker, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	repo, err := database.New(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	fsp, err := filestorage.NewFromEnv(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create file storage provider: %w", err)
	}

	var tokenTTL time.Duration
	if h, err := strconv.Atoi(os.Getenv(config.ENV_KEY_JWT_EXPIRE_HOURS)); err == nil {
		tokenTTL = time.Duration(h) * time.Hour
	}

	// The worker never enqueues follow-up tasks, so no queue client.
	uc := usecase.New(repo, fsp, nil, logger,
		[]byte(os.Getenv(config.ENV_KEY_JWT_SECRET)), tokenTTL)

	h := handlers.NewHandlers(uc, logger)

	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     os.Getenv(config.ENV_KEY_REDIS_ADDR),
			Password: os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
		},
		asynq.Config{
			Concurrency: 10,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(handlers.TypeExtractColors, h.HandleExtractColors)

	return &Worker{
		server: &Server{asynqServer: asynqServer, mux: mux},
		uc:     uc,
		logger: logger,
	}, nil
}

// Run starts processing tasks and blocks until shutdown.
func (w *Worker) Run() error {
	w.logger.Info("worker starting")
	return w.server.asynqServer.Run(w.server.mux)
}

// Shutdown stops the worker and releases its resources.
func (w *Worker) Shutdown() {
	w.server.asynqServer.Shutdown()
	if err := w.uc.Close(); err != nil {
		w.logger.Error("failed to close repository", slog.String("err", err.Error()))
	}
}
