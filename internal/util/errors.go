package util

import "errors"

var (
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizClosed         = errors.New("quiz is not open for applications")
	ErrQuizNoQuestions    = errors.New("quiz must have at least one question")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionNotTaking   = errors.New("session is not in the taking state")
	ErrSessionFinished    = errors.New("session already submitted")
	ErrStaleQuestionIndex = errors.New("answer already recorded for this question")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidTransition  = errors.New("invalid submission status transition")
	ErrNotClaimOwner      = errors.New("submission is claimed by another moderator")
	ErrProductNotFound    = errors.New("product not found")
	ErrGameServerOffline  = errors.New("game server is offline")
)
