package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to SubmissionStatus
		ok       bool
	}{
		{StatusPending, StatusTaken, true},
		{StatusTaken, StatusAccepted, true},
		{StatusTaken, StatusRefused, true},
		{StatusPending, StatusAccepted, false},
		{StatusPending, StatusRefused, false},
		{StatusTaken, StatusPending, false},
		{StatusAccepted, StatusRefused, false},
		{StatusAccepted, StatusTaken, false},
		{StatusRefused, StatusAccepted, false},
		{StatusRefused, StatusTaken, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestDecodedAnswers(t *testing.T) {
	sub := &QuizSubmission{Answers: []byte(`[{"questionId":"q1","questionText":"Why?","answer":"Because."}]`)}

	answers, err := sub.DecodedAnswers()
	assert.NoError(t, err)
	assert.Len(t, answers, 1)
	assert.Equal(t, "Because.", answers[0].Answer)

	empty := &QuizSubmission{}
	answers, err = empty.DecodedAnswers()
	assert.NoError(t, err)
	assert.Empty(t, answers)
}
