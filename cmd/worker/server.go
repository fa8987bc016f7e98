package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"

	"pvadb-backend/internal/shared"
	"pvadb-backend/pkg/container"
	"pvadb-backend/pkg/logger"
)

// asynqServer wraps asynq.Server so shutdown can be driven from main
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and configures the Asynq server
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueModeration: 10,
				shared.QueueDefault:    5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Task failed: "+task.Type(), err)
			}),
		},
	)

	go func() {
		logger.Info("Asynq server starting", map[string]interface{}{})
		if err := srv.Run(mux); err != nil {
			logger.Error("Asynq server failed", err)
			os.Exit(1)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown gracefully shuts down the server
func (s *asynqServer) Shutdown() {
	logger.Info("Asynq server shutting down", map[string]interface{}{})
	s.Server.Shutdown()
}
