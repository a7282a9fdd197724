package service

import (
	"encoding/json"
	"sync"
	"time"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"
	"horizon_backend/pkg/logger"
	"horizon_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// SessionState is the lifecycle of one application attempt. There is no
// persisted "abandoned" state: an abandoned session is simply destroyed.
type SessionState string

const (
	StateRules     SessionState = "rules"
	StateTaking    SessionState = "taking"
	StateSubmitted SessionState = "submitted"
)

// QuizStore and SubmissionWriter are the persistence contracts the machine
// depends on, satisfied by the gorm repositories in production.
type QuizStore interface {
	FindByID(id string) (*model.Quiz, error)
}

type SubmissionWriter interface {
	Create(*model.QuizSubmission) error
}

// Translator resolves string keys; the machine denormalizes translated
// question text into answers at the moment they are recorded.
type Translator interface {
	T(lang, key string) string
}

// sessionQuestion is the immutable snapshot of one question taken when the
// session is created. Later edits to the quiz cannot touch a live session.
type sessionQuestion struct {
	ID        string
	Text      string
	TimeLimit int
}

// QuizSession is one user's in-progress attempt at an application quiz.
// All mutation goes through SessionService methods under mu.
type QuizSession struct {
	ID        string
	QuizID    string
	QuizTitle string
	UserID    string
	Username  string

	mu        sync.Mutex
	state     SessionState
	index     int
	remaining int
	draft     string
	answers   []model.Answer
	questions []sessionQuestion

	// pending holds the built submission when all questions are answered
	// but the store write has not succeeded yet, so a retry cannot
	// duplicate answers or mint a second submission id.
	pending *model.QuizSubmission

	done     chan struct{}
	doneOnce sync.Once
	touched  time.Time
}

// stopTicker releases the countdown goroutine. Safe to call on every exit
// transition; the channel closes once.
func (sess *QuizSession) stopTicker() {
	sess.doneOnce.Do(func() { close(sess.done) })
}

// SessionView is the read model returned to the HTTP layer.
type SessionView struct {
	ID             string       `json:"id"`
	QuizID         string       `json:"quizId"`
	QuizTitle      string       `json:"quizTitle"`
	State          SessionState `json:"state"`
	QuestionIndex  int          `json:"questionIndex"`
	TotalQuestions int          `json:"totalQuestions"`
	QuestionText   string       `json:"questionText,omitempty"`
	TimeRemaining  int          `json:"timeRemaining"`
	SubmitFailed   bool         `json:"submitFailed,omitempty"`
}

// SessionService owns every live quiz session. Sessions are in-memory
// only: a restart abandons them all, which matches the product rule that
// leaving the page cancels the attempt.
type SessionService struct {
	quizzes     QuizStore
	submissions SubmissionWriter
	notifier    Notifier
	translator  Translator

	mu       sync.Mutex
	sessions map[string]*QuizSession

	tickInterval time.Duration
	maxIdle      time.Duration
}

func NewSessionService(quizzes QuizStore, submissions SubmissionWriter, notifier Notifier, translator Translator) *SessionService {
	return &SessionService{
		quizzes:      quizzes,
		submissions:  submissions,
		notifier:     notifier,
		translator:   translator,
		sessions:     make(map[string]*QuizSession),
		tickInterval: time.Second,
		maxIdle:      30 * time.Minute,
	}
}

// Start checks the entry guards (quiz exists, quiz open, questions
// present) and creates a session in the rules state. The caller is already
// authenticated by the middleware. Any previous live session of the same
// user for the same quiz is abandoned first.
func (s *SessionService) Start(user *util.Claims, quizID, lang string) (*SessionView, error) {
	quiz, err := s.quizzes.FindByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if !quiz.IsOpen {
		return nil, util.ErrQuizClosed
	}
	if len(quiz.Questions) == 0 {
		return nil, util.ErrQuizNoQuestions
	}

	questions := make([]sessionQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = sessionQuestion{
			ID:        q.ID,
			Text:      s.translator.T(lang, q.TextKey),
			TimeLimit: q.TimeLimit,
		}
	}

	sess := &QuizSession{
		ID:        model.GenerateUUID(),
		QuizID:    quiz.ID,
		QuizTitle: s.translator.T(lang, quiz.TitleKey),
		UserID:    user.UserID,
		Username:  user.Username,
		state:     StateRules,
		remaining: questions[0].TimeLimit,
		questions: questions,
		answers:   make([]model.Answer, 0, len(questions)),
		done:      make(chan struct{}),
		touched:   time.Now(),
	}

	s.mu.Lock()
	for id, existing := range s.sessions {
		if existing.UserID == user.UserID && existing.QuizID == quiz.ID {
			existing.stopTicker()
			delete(s.sessions, id)
			monitoring.ActiveQuizSessions.Dec()
		}
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	monitoring.ActiveQuizSessions.Inc()

	return sess.view(), nil
}

// Begin moves a session from rules to taking and starts its countdown.
func (s *SessionService) Begin(sessionID, userID string) (*SessionView, error) {
	sess, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateRules {
		return nil, util.ErrSessionNotTaking
	}

	sess.state = StateTaking
	sess.remaining = sess.questions[0].TimeLimit
	sess.touched = time.Now()

	go s.runTicker(sess)

	return sess.viewLocked(), nil
}

// UpdateDraft syncs the applicant's typed buffer so a server-side timeout
// can capture it, mirroring the page's local textarea state.
func (s *SessionService) UpdateDraft(sessionID, userID, text string) error {
	sess, err := s.find(sessionID, userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateTaking {
		return util.ErrSessionNotTaking
	}
	sess.draft = text
	sess.touched = time.Now()
	return nil
}

// Advance records the answer for the question at index and moves on (or
// submits, if it was the last question). The index must match the
// session's current question, so a double-fired advance can record at most
// one answer per question.
func (s *SessionService) Advance(sessionID, userID string, index int, answer string) (*SessionView, error) {
	sess, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == StateSubmitted {
		return nil, util.ErrSessionFinished
	}
	if sess.state != StateTaking || sess.pending != nil {
		return nil, util.ErrSessionNotTaking
	}
	if index != sess.index {
		return nil, util.ErrStaleQuestionIndex
	}

	s.recordAnswerLocked(sess, answer)
	return sess.viewLocked(), nil
}

// RetrySubmit re-attempts the store write after a failed submission. The
// answers are already recorded; only the persist step runs again, with the
// same submission id.
func (s *SessionService) RetrySubmit(sessionID, userID string) (*SessionView, error) {
	sess, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == StateSubmitted {
		return nil, util.ErrSessionFinished
	}
	if sess.pending == nil {
		return nil, util.ErrSessionNotTaking
	}

	s.persistLocked(sess)
	return sess.viewLocked(), nil
}

// Abandon cancels a session that has not been submitted: the visibility
// loss and navigation-away path. Nothing is persisted.
func (s *SessionService) Abandon(sessionID, userID string) error {
	sess, err := s.find(sessionID, userID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.state == StateSubmitted {
		sess.mu.Unlock()
		return util.ErrSessionFinished
	}
	sess.stopTicker()
	sess.mu.Unlock()

	s.remove(sessionID)
	logger.Log.Info("application session abandoned",
		zap.String("sessionId", sessionID), zap.String("userId", userID))
	return nil
}

// Get returns the current view, for page refreshes.
func (s *SessionService) Get(sessionID, userID string) (*SessionView, error) {
	sess, err := s.find(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return sess.view(), nil
}

// Tick advances a session's clock by one second. Exposed on the service so
// the countdown goroutine and the tests drive the exact same path. Returns
// false when the ticker should stop.
func (s *SessionService) Tick(sessionID string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return s.tick(sess)
}

func (s *SessionService) tick(sess *QuizSession) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateTaking || sess.pending != nil {
		return false
	}

	if sess.remaining > 0 {
		sess.remaining--
	}
	if sess.remaining > 0 {
		return true
	}

	// Zero means the question is over in this very tick: record the draft
	// (or the sentinel) and move on. No grace render of an expired timer.
	s.recordAnswerLocked(sess, sess.draft)
	return sess.state == StateTaking && sess.pending == nil
}

func (s *SessionService) runTicker(sess *QuizSession) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.done:
			return
		case <-ticker.C:
			if !s.tick(sess) {
				return
			}
		}
	}
}

// recordAnswerLocked appends exactly one answer for the current question
// and either advances the index or finishes the session. Callers hold
// sess.mu.
func (s *SessionService) recordAnswerLocked(sess *QuizSession, text string) {
	question := sess.questions[sess.index]
	if text == "" {
		text = model.NoAnswerSentinel
	}

	sess.answers = append(sess.answers, model.Answer{
		QuestionID:   question.ID,
		QuestionText: question.Text,
		Answer:       text,
	})
	sess.draft = ""
	sess.touched = time.Now()

	if sess.index < len(sess.questions)-1 {
		sess.index++
		sess.remaining = sess.questions[sess.index].TimeLimit
		return
	}

	// Last question answered: build the submission once, then persist.
	answersJSON, err := json.Marshal(sess.answers)
	if err != nil {
		logger.Log.Error("marshalling session answers", zap.Error(err))
		answersJSON = []byte("[]")
	}

	sess.pending = &model.QuizSubmission{
		UUIDBase:    model.UUIDBase{ID: model.GenerateUUID()},
		QuizID:      sess.QuizID,
		QuizTitle:   sess.QuizTitle,
		UserID:      sess.UserID,
		Username:    sess.Username,
		Answers:     answersJSON,
		SubmittedAt: time.Now(),
		Status:      model.StatusPending,
	}
	sess.stopTicker()

	s.persistLocked(sess)
}

// persistLocked writes the pending submission. On failure the session
// stays retryable instead of pretending it was submitted.
func (s *SessionService) persistLocked(sess *QuizSession) {
	if err := s.submissions.Create(sess.pending); err != nil {
		logger.Log.Error("persisting submission failed",
			zap.String("sessionId", sess.ID),
			zap.String("quizId", sess.QuizID),
			zap.Error(err))
		return
	}

	sess.state = StateSubmitted
	monitoring.SubmissionsTotal.WithLabelValues(sess.QuizID).Inc()

	if s.notifier != nil {
		s.notifier.SubmissionReceived(sess.pending, sess.answers)
	}
}

// StartJanitor reaps submitted and idle sessions once a minute.
func (s *SessionService) StartJanitor() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s.sweep()
		}
	}()
}

func (s *SessionService) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := time.Since(sess.touched) > s.maxIdle || sess.state == StateSubmitted && time.Since(sess.touched) > time.Minute
		if expired {
			sess.stopTicker()
		}
		sess.mu.Unlock()

		if expired {
			delete(s.sessions, id)
			monitoring.ActiveQuizSessions.Dec()
		}
	}
}

func (s *SessionService) find(sessionID, userID string) (*QuizSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()

	if !ok || sess.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionService) remove(sessionID string) {
	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; ok {
		delete(s.sessions, sessionID)
		monitoring.ActiveQuizSessions.Dec()
	}
	s.mu.Unlock()
}

func (sess *QuizSession) view() *SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked()
}

func (sess *QuizSession) viewLocked() *SessionView {
	v := &SessionView{
		ID:             sess.ID,
		QuizID:         sess.QuizID,
		QuizTitle:      sess.QuizTitle,
		State:          sess.state,
		QuestionIndex:  sess.index,
		TotalQuestions: len(sess.questions),
		TimeRemaining:  sess.remaining,
		SubmitFailed:   sess.pending != nil && sess.state != StateSubmitted,
	}
	if sess.state == StateTaking && sess.pending == nil {
		v.QuestionText = sess.questions[sess.index].Text
	}
	return v
}
