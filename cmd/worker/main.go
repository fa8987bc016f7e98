package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pvadb-backend/pkg/container"
	"pvadb-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	c, err := container.NewContainer()
	if err != nil {
		logger.Error("Failed to initialize container", err)
		os.Exit(1)
	}
	defer c.Close()

	handlers := initializeHandlers(c)

	srv := setupAsynqServer(c, handlers)
	scheduler := setupScheduler(c)

	logger.Info("Worker started", map[string]interface{}{
		"env":   env,
		"redis": c.Config.Redis.Host,
	})

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker", map[string]interface{}{})
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("Worker stopped", map[string]interface{}{})
}
