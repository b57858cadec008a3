package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/queue"
)

func main() {
	worker, err := queue.NewWorker()
	if err != nil {
		log.Fatalf("Failed to create worker: %v", err)
	}

	go func() {
		if err := worker.Run(); err != nil {
			log.Printf("Worker error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	worker.Shutdown()
	log.Println("Worker exited properly")
}
