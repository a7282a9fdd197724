package service

import (
	"encoding/json"
	"testing"
	"time"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSubmissionStore struct {
	subs map[string]*model.QuizSubmission
}

func (f *fakeSubmissionStore) ListAll() ([]model.QuizSubmission, error) {
	var out []model.QuizSubmission
	for _, s := range f.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSubmissionStore) ListByUser(userID string) ([]model.QuizSubmission, error) {
	var out []model.QuizSubmission
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) FindByID(id string) (*model.QuizSubmission, error) {
	s, ok := f.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubmissionStore) UpdateStatus(id string, status model.SubmissionStatus, adminID, adminUsername string, check func(*model.QuizSubmission) error) error {
	s, ok := f.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if check != nil {
		if err := check(s); err != nil {
			return err
		}
	}
	s.Status = status
	s.AdminID = adminID
	s.AdminUsername = adminUsername
	return nil
}

type fakeAuditStore struct {
	entries []model.AuditLogEntry
}

func (f *fakeAuditStore) Append(e *model.AuditLogEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditStore) ListAll() ([]model.AuditLogEntry, error) {
	return f.entries, nil
}

func pendingSubmission(id string) *model.QuizSubmission {
	answers, _ := json.Marshal([]model.Answer{{QuestionID: "q1", QuestionText: "Why?", Answer: "Because."}})
	return &model.QuizSubmission{
		UUIDBase:    model.UUIDBase{ID: id},
		QuizID:      "quiz_police",
		QuizTitle:   "Police Department",
		UserID:      "111222333",
		Username:    "jo",
		Answers:     answers,
		SubmittedAt: time.Now(),
		Status:      model.StatusPending,
	}
}

func newModerationFixture(t *testing.T) (*ModerationService, *fakeSubmissionStore, *fakeAuditStore, *fakeNotifier) {
	t.Helper()
	store := &fakeSubmissionStore{subs: map[string]*model.QuizSubmission{
		"sub1": pendingSubmission("sub1"),
	}}
	audit := &fakeAuditStore{}
	notifier := &fakeNotifier{}
	return NewModerationService(store, audit, notifier), store, audit, notifier
}

func moderator(id, name string) *util.Claims {
	return &util.Claims{UserID: id, Username: name, IsAdmin: true}
}

func TestClaimFromPending(t *testing.T) {
	svc, store, audit, notifier := newModerationFixture(t)

	sub, err := svc.SetStatus(moderator("admin1", "alex"), "sub1", model.StatusTaken)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusTaken, sub.Status)
	assert.Equal(t, "admin1", sub.AdminID)
	assert.Equal(t, "admin1", store.subs["sub1"].AdminID)

	assert.Len(t, audit.entries, 1)
	assert.Contains(t, audit.entries[0].Action, "taken")
	assert.Equal(t, 0, notifier.decided)
}

func TestAcceptSkippingClaimRejected(t *testing.T) {
	svc, _, audit, notifier := newModerationFixture(t)

	_, err := svc.SetStatus(moderator("admin1", "alex"), "sub1", model.StatusAccepted)
	assert.Equal(t, util.ErrInvalidTransition, err)
	assert.Empty(t, audit.entries)
	assert.Equal(t, 0, notifier.decided)
}

func TestOnlyClaimOwnerResolves(t *testing.T) {
	svc, _, _, notifier := newModerationFixture(t)

	_, err := svc.SetStatus(moderator("admin1", "alex"), "sub1", model.StatusTaken)
	assert.NoError(t, err)

	_, err = svc.SetStatus(moderator("admin2", "sam"), "sub1", model.StatusRefused)
	assert.Equal(t, util.ErrNotClaimOwner, err)
	assert.Equal(t, 0, notifier.decided)

	sub, err := svc.SetStatus(moderator("admin1", "alex"), "sub1", model.StatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, sub.Status)
	assert.Equal(t, 1, notifier.decided)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	admin := moderator("admin1", "alex")
	_, _ = svc.SetStatus(admin, "sub1", model.StatusTaken)
	_, _ = svc.SetStatus(admin, "sub1", model.StatusRefused)

	_, err := svc.SetStatus(admin, "sub1", model.StatusAccepted)
	assert.Equal(t, util.ErrInvalidTransition, err)
	_, err = svc.SetStatus(admin, "sub1", model.StatusTaken)
	assert.Equal(t, util.ErrInvalidTransition, err)
}

func TestSetStatusRejectsPendingTarget(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	_, err := svc.SetStatus(moderator("admin1", "alex"), "sub1", model.StatusPending)
	assert.Equal(t, util.ErrInvalidTransition, err)
}

func TestSetStatusMissingSubmission(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	_, err := svc.SetStatus(moderator("admin1", "alex"), "missing", model.StatusTaken)
	assert.Equal(t, util.ErrSubmissionNotFound, err)
}

func TestEveryDecisionAudited(t *testing.T) {
	svc, _, audit, _ := newModerationFixture(t)

	admin := moderator("admin1", "alex")
	_, _ = svc.SetStatus(admin, "sub1", model.StatusTaken)
	_, _ = svc.SetStatus(admin, "sub1", model.StatusAccepted)

	entries, err := svc.AuditLog()
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Contains(t, entries[1].Action, "jo's application for 'Police Department'")
	assert.Equal(t, len(audit.entries), len(entries))
}
