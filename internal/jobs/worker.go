package jobs

import (
	"fmt"

	"horizon_backend/internal/config"
	"horizon_backend/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewClient returns the asynq producer used by the services to enqueue
// notification tasks.
func NewClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// StartWorker runs the notification consumer in the background. Failed
// deliveries are retried by asynq; the moderation write path never waits
// on Discord.
func StartWorker(cfg *config.Config, handlers *NotifyHandlers) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifySubmission, handlers.HandleSubmissionNotify)
	mux.HandleFunc(TypeNotifyDecision, handlers.HandleDecisionNotify)

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Log.Error("notification worker stopped", zap.Error(err))
		}
	}()

	return srv
}
