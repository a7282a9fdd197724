package jobs

import (
	"encoding/json"

	"horizon_backend/internal/model"

	"github.com/hibiken/asynq"
)

const (
	TypeNotifySubmission = "notify:submission"
	TypeNotifyDecision   = "notify:decision"
)

// SubmissionNotifyPayload carries everything needed to post the "new
// application" embed to the admin channel.
type SubmissionNotifyPayload struct {
	SubmissionID string         `json:"submission_id"`
	QuizTitle    string         `json:"quiz_title"`
	UserID       string         `json:"user_id"`
	Username     string         `json:"username"`
	Answers      []model.Answer `json:"answers"`
}

// DecisionNotifyPayload carries the data for the applicant's decision DM.
type DecisionNotifyPayload struct {
	SubmissionID  string                 `json:"submission_id"`
	QuizTitle     string                 `json:"quiz_title"`
	UserID        string                 `json:"user_id"`
	Username      string                 `json:"username"`
	Status        model.SubmissionStatus `json:"status"`
	AdminUsername string                 `json:"admin_username"`
}

func NewSubmissionNotifyTask(p SubmissionNotifyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifySubmission, payload), nil
}

func NewDecisionNotifyTask(p DecisionNotifyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyDecision, payload), nil
}
