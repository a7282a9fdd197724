package model

import (
	"encoding/json"
	"time"
)

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusTaken    SubmissionStatus = "taken"
	StatusAccepted SubmissionStatus = "accepted"
	StatusRefused  SubmissionStatus = "refused"
)

// NoAnswerSentinel is recorded when a question times out with an empty
// answer buffer.
const NoAnswerSentinel = "No answer (time out)"

// Answer captures the question text as it was shown to the applicant, so a
// later edit of the quiz cannot rewrite history.
type Answer struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	Answer       string `json:"answer"`
}

// QuizSubmission is one completed application. It is created once by the
// quiz session machine with status pending, mutated only through moderation
// status changes, and never deleted.
// swagger:model QuizSubmission
type QuizSubmission struct {
	UUIDBase
	QuizID        string           `gorm:"index;type:varchar(36)" json:"quizId"`
	QuizTitle     string           `gorm:"size:255;not null" json:"quizTitle"`
	UserID        string           `gorm:"index;size:32;not null" json:"userId"`
	Username      string           `gorm:"size:100;not null" json:"username"`
	Answers       json.RawMessage  `gorm:"type:json" json:"answers"`
	SubmittedAt   time.Time        `gorm:"not null" json:"submittedAt"`
	Status        SubmissionStatus `gorm:"size:20;default:'pending'" json:"status"`
	AdminID       string           `gorm:"size:32" json:"adminId,omitempty"`
	AdminUsername string           `gorm:"size:100" json:"adminUsername,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// DecodedAnswers unmarshals the stored answer list.
func (s *QuizSubmission) DecodedAnswers() ([]Answer, error) {
	var answers []Answer
	if len(s.Answers) == 0 {
		return answers, nil
	}
	err := json.Unmarshal(s.Answers, &answers)
	return answers, err
}

// ValidTransition reports whether a status change follows the monotone
// pending -> taken -> {accepted, refused} chain. accepted and refused are
// terminal.
func ValidTransition(from, to SubmissionStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusTaken
	case StatusTaken:
		return to == StatusAccepted || to == StatusRefused
	default:
		return false
	}
}
