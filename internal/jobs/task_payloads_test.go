package jobs

import (
	"encoding/json"
	"testing"

	"horizon_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNewSubmissionNotifyTask(t *testing.T) {
	task, err := NewSubmissionNotifyTask(SubmissionNotifyPayload{
		SubmissionID: "sub1",
		QuizTitle:    "Police Department",
		UserID:       "111",
		Username:     "jo",
		Answers:      []model.Answer{{QuestionID: "q1", QuestionText: "Why?", Answer: "Because."}},
	})
	assert.NoError(t, err)
	assert.Equal(t, TypeNotifySubmission, task.Type())

	var decoded SubmissionNotifyPayload
	assert.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, "sub1", decoded.SubmissionID)
	assert.Len(t, decoded.Answers, 1)
}

func TestNewDecisionNotifyTask(t *testing.T) {
	task, err := NewDecisionNotifyTask(DecisionNotifyPayload{
		SubmissionID:  "sub1",
		QuizTitle:     "Police Department",
		UserID:        "111",
		Username:      "jo",
		Status:        model.StatusAccepted,
		AdminUsername: "alex",
	})
	assert.NoError(t, err)
	assert.Equal(t, TypeNotifyDecision, task.Type())

	var decoded DecisionNotifyPayload
	assert.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, model.StatusAccepted, decoded.Status)
}
