package service

import (
	"horizon_backend/internal/jobs"
	"horizon_backend/internal/model"
	"horizon_backend/pkg/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Notifier is the outbound notification contract the quiz and moderation
// services depend on. Delivery is fire-and-forget: a broker hiccup is
// logged, never surfaced to the request that triggered it.
type Notifier interface {
	SubmissionReceived(sub *model.QuizSubmission, answers []model.Answer)
	DecisionMade(sub *model.QuizSubmission)
}

// NotifyService enqueues Discord notification tasks on the asynq queue.
type NotifyService struct {
	Client *asynq.Client
}

func NewNotifyService(client *asynq.Client) *NotifyService {
	return &NotifyService{Client: client}
}

func (s *NotifyService) SubmissionReceived(sub *model.QuizSubmission, answers []model.Answer) {
	task, err := jobs.NewSubmissionNotifyTask(jobs.SubmissionNotifyPayload{
		SubmissionID: sub.ID,
		QuizTitle:    sub.QuizTitle,
		UserID:       sub.UserID,
		Username:     sub.Username,
		Answers:      answers,
	})
	if err != nil {
		logger.Log.Error("building submission notify task", zap.Error(err))
		return
	}
	if _, err := s.Client.Enqueue(task); err != nil {
		logger.Log.Error("enqueueing submission notify task",
			zap.String("submissionId", sub.ID), zap.Error(err))
	}
}

func (s *NotifyService) DecisionMade(sub *model.QuizSubmission) {
	task, err := jobs.NewDecisionNotifyTask(jobs.DecisionNotifyPayload{
		SubmissionID:  sub.ID,
		QuizTitle:     sub.QuizTitle,
		UserID:        sub.UserID,
		Username:      sub.Username,
		Status:        sub.Status,
		AdminUsername: sub.AdminUsername,
	})
	if err != nil {
		logger.Log.Error("building decision notify task", zap.Error(err))
		return
	}
	if _, err := s.Client.Enqueue(task); err != nil {
		logger.Log.Error("enqueueing decision notify task",
			zap.String("submissionId", sub.ID), zap.Error(err))
	}
}
