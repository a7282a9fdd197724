package service

import (
	"errors"
	"testing"
	"time"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

type fakeQuizStore struct {
	quizzes map[string]*model.Quiz
}

func (f *fakeQuizStore) FindByID(id string) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return quiz, nil
}

type fakeSubmissionWriter struct {
	fail    bool
	created []*model.QuizSubmission
}

func (f *fakeSubmissionWriter) Create(s *model.QuizSubmission) error {
	if f.fail {
		return errors.New("db down")
	}
	f.created = append(f.created, s)
	return nil
}

type fakeNotifier struct {
	received int
	decided  int
}

func (f *fakeNotifier) SubmissionReceived(sub *model.QuizSubmission, answers []model.Answer) {
	f.received++
}

func (f *fakeNotifier) DecisionMade(sub *model.QuizSubmission) {
	f.decided++
}

type fakeTranslator struct{}

func (fakeTranslator) T(lang, key string) string {
	return lang + ":" + key
}

func policeQuiz() *model.Quiz {
	return &model.Quiz{
		UUIDBase:       model.UUIDBase{ID: "quiz_police"},
		TitleKey:       "quiz.police.title",
		DescriptionKey: "quiz.police.desc",
		IsOpen:         true,
		Questions: []model.QuizQuestion{
			{UUIDBase: model.UUIDBase{ID: "q1"}, TextKey: "quiz.police.q1", TimeLimit: 60, Order: 0},
			{UUIDBase: model.UUIDBase{ID: "q2"}, TextKey: "quiz.police.q2", TimeLimit: 90, Order: 1},
		},
	}
}

func newSessionFixture(t *testing.T) (*SessionService, *fakeSubmissionWriter, *fakeNotifier) {
	t.Helper()
	store := &fakeQuizStore{quizzes: map[string]*model.Quiz{"quiz_police": policeQuiz()}}
	writer := &fakeSubmissionWriter{}
	notifier := &fakeNotifier{}
	svc := NewSessionService(store, writer, notifier, fakeTranslator{})
	// Tests drive the clock through Tick directly.
	svc.tickInterval = time.Hour
	return svc, writer, notifier
}

func applicant() *util.Claims {
	return &util.Claims{UserID: "111222333", Username: "jo"}
}

func TestStartGuards(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	_, err := svc.Start(applicant(), "missing", "en")
	assert.Equal(t, util.ErrQuizNotFound, err)

	closed := policeQuiz()
	closed.ID = "quiz_closed"
	closed.IsOpen = false
	svc.quizzes.(*fakeQuizStore).quizzes["quiz_closed"] = closed
	_, err = svc.Start(applicant(), "quiz_closed", "en")
	assert.Equal(t, util.ErrQuizClosed, err)

	empty := &model.Quiz{UUIDBase: model.UUIDBase{ID: "quiz_empty"}, IsOpen: true}
	svc.quizzes.(*fakeQuizStore).quizzes["quiz_empty"] = empty
	_, err = svc.Start(applicant(), "quiz_empty", "en")
	assert.Equal(t, util.ErrQuizNoQuestions, err)
}

func TestStartSnapshotsTranslatedQuestions(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	view, err := svc.Start(applicant(), "quiz_police", "ar")
	assert.NoError(t, err)
	assert.Equal(t, StateRules, view.State)
	assert.Equal(t, "ar:quiz.police.title", view.QuizTitle)
	assert.Equal(t, 2, view.TotalQuestions)
	assert.Equal(t, 60, view.TimeRemaining)
	assert.Empty(t, view.QuestionText)
}

func TestFullRunSubmits(t *testing.T) {
	svc, writer, notifier := newSessionFixture(t)
	user := applicant()

	view, err := svc.Start(user, "quiz_police", "en")
	assert.NoError(t, err)

	view, err = svc.Begin(view.ID, user.UserID)
	assert.NoError(t, err)
	assert.Equal(t, StateTaking, view.State)
	assert.Equal(t, "en:quiz.police.q1", view.QuestionText)

	view, err = svc.Advance(view.ID, user.UserID, 0, "I want to serve.")
	assert.NoError(t, err)
	assert.Equal(t, 1, view.QuestionIndex)
	assert.Equal(t, 90, view.TimeRemaining)

	view, err = svc.Advance(view.ID, user.UserID, 1, "Five years experience.")
	assert.NoError(t, err)
	assert.Equal(t, StateSubmitted, view.State)

	assert.Len(t, writer.created, 1)
	sub := writer.created[0]
	assert.Equal(t, model.StatusPending, sub.Status)
	assert.Equal(t, "en:quiz.police.title", sub.QuizTitle)

	answers, err := sub.DecodedAnswers()
	assert.NoError(t, err)
	assert.Len(t, answers, 2)
	assert.Equal(t, "I want to serve.", answers[0].Answer)
	assert.Equal(t, "en:quiz.police.q1", answers[0].QuestionText)
	assert.Equal(t, "Five years experience.", answers[1].Answer)

	assert.Equal(t, 1, notifier.received)
}

func TestAdvanceRecordsAtMostOncePerQuestion(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	user := applicant()

	view, _ := svc.Start(user, "quiz_police", "en")
	view, _ = svc.Begin(view.ID, user.UserID)

	_, err := svc.Advance(view.ID, user.UserID, 0, "first")
	assert.NoError(t, err)

	// A double-fired advance for the same question is rejected.
	_, err = svc.Advance(view.ID, user.UserID, 0, "duplicate")
	assert.Equal(t, util.ErrStaleQuestionIndex, err)
}

func TestTimeoutRecordsSentinel(t *testing.T) {
	svc, writer, _ := newSessionFixture(t)
	user := applicant()

	view, _ := svc.Start(user, "quiz_police", "en")
	view, _ = svc.Begin(view.ID, user.UserID)

	for i := 0; i < 60; i++ {
		svc.Tick(view.ID)
	}

	view, err := svc.Get(view.ID, user.UserID)
	assert.NoError(t, err)
	assert.Equal(t, 1, view.QuestionIndex)
	assert.Equal(t, 90, view.TimeRemaining)

	// Second question times out with a draft in the buffer.
	assert.NoError(t, svc.UpdateDraft(view.ID, user.UserID, "half-typed answer"))
	for i := 0; i < 90; i++ {
		svc.Tick(view.ID)
	}

	assert.Len(t, writer.created, 1)
	answers, _ := writer.created[0].DecodedAnswers()
	assert.Len(t, answers, 2)
	assert.Equal(t, model.NoAnswerSentinel, answers[0].Answer)
	assert.Equal(t, "half-typed answer", answers[1].Answer)
}

func TestCountdownNeverNegative(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	user := applicant()

	view, _ := svc.Start(user, "quiz_police", "en")
	view, _ = svc.Begin(view.ID, user.UserID)

	for i := 0; i < 200; i++ {
		svc.Tick(view.ID)
		got, err := svc.Get(view.ID, user.UserID)
		if err != nil {
			break
		}
		assert.GreaterOrEqual(t, got.TimeRemaining, 0)
	}
}

func TestAbandon(t *testing.T) {
	svc, writer, _ := newSessionFixture(t)
	user := applicant()

	view, _ := svc.Start(user, "quiz_police", "en")
	view, _ = svc.Begin(view.ID, user.UserID)
	_, _ = svc.Advance(view.ID, user.UserID, 0, "partial progress")

	assert.NoError(t, svc.Abandon(view.ID, user.UserID))
	assert.Empty(t, writer.created)

	_, err := svc.Get(view.ID, user.UserID)
	assert.Equal(t, util.ErrSessionNotFound, err)
}

func TestAbandonAfterSubmitRejected(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	user := applicant()

	view, _ := svc.Start(user, "quiz_police", "en")
	view, _ = svc.Begin(view.ID, user.UserID)
	view, _ = svc.Advance(view.ID, user.UserID, 0, "a")
	view, _ = svc.Advance(view.ID, user.UserID, 1, "b")
	assert.Equal(t, StateSubmitted, view.State)

	assert.Equal(t, util.ErrSessionFinished, svc.Abandon(view.ID, user.UserID))
}

func TestRetryAfterPersistFailure(t *testing.T) {
	svc, writer, notifier := newSessionFixture(t)
	writer.fail = true
	user := applicant()

	view, _ := svc.Start(user, "quiz_police", "en")
	view, _ = svc.Begin(view.ID, user.UserID)
	view, _ = svc.Advance(view.ID, user.UserID, 0, "a")
	view, err := svc.Advance(view.ID, user.UserID, 1, "b")
	assert.NoError(t, err)

	// The write failed, so the session is finished but not submitted.
	assert.NotEqual(t, StateSubmitted, view.State)
	assert.True(t, view.SubmitFailed)
	assert.Empty(t, writer.created)
	assert.Equal(t, 0, notifier.received)

	// Further answers are rejected; only retry is allowed.
	_, err = svc.Advance(view.ID, user.UserID, 1, "again")
	assert.Error(t, err)

	writer.fail = false
	view, err = svc.RetrySubmit(view.ID, user.UserID)
	assert.NoError(t, err)
	assert.Equal(t, StateSubmitted, view.State)
	assert.Len(t, writer.created, 1)
	assert.Equal(t, 1, notifier.received)

	answers, _ := writer.created[0].DecodedAnswers()
	assert.Len(t, answers, 2)
}

func TestSessionIsOwnerScoped(t *testing.T) {
	svc, _, _ := newSessionFixture(t)

	view, _ := svc.Start(applicant(), "quiz_police", "en")

	_, err := svc.Get(view.ID, "someone-else")
	assert.Equal(t, util.ErrSessionNotFound, err)
}

func TestRestartReplacesLiveSession(t *testing.T) {
	svc, _, _ := newSessionFixture(t)
	user := applicant()

	first, _ := svc.Start(user, "quiz_police", "en")
	second, err := svc.Start(user, "quiz_police", "en")
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = svc.Get(first.ID, user.UserID)
	assert.Equal(t, util.ErrSessionNotFound, err)
}
