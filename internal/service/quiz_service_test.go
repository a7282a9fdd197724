package service

import (
	"testing"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeQuizAdminStore struct {
	quizzes map[string]*model.Quiz
}

func (f *fakeQuizAdminStore) FindByID(id string) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuizAdminStore) ListAll() ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range f.quizzes {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeQuizAdminStore) ListOpen() ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range f.quizzes {
		if q.IsOpen {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizAdminStore) Create(q *model.Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizAdminStore) Update(q *model.Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeQuizAdminStore) Delete(id string) error {
	delete(f.quizzes, id)
	return nil
}

func newQuizFixture(t *testing.T) (*QuizService, *fakeQuizAdminStore, *fakeAuditStore) {
	t.Helper()
	store := &fakeQuizAdminStore{quizzes: map[string]*model.Quiz{}}
	audit := &fakeAuditStore{}
	return NewQuizService(store, audit, fakeTranslator{}), store, audit
}

func TestCreateQuizAssignsQuestionOrder(t *testing.T) {
	svc, store, audit := newQuizFixture(t)

	quiz, err := svc.Create(moderator("admin1", "alex"), &QuizInput{
		TitleKey:       "quiz.ems.title",
		DescriptionKey: "quiz.ems.desc",
		IsOpen:         true,
		Questions: []QuestionInput{
			{TextKey: "quiz.ems.q1", TimeLimit: 75},
			{TextKey: "quiz.ems.q2", TimeLimit: 45},
		},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, quiz.ID)
	assert.Len(t, quiz.Questions, 2)
	assert.Equal(t, 0, quiz.Questions[0].Order)
	assert.Equal(t, 1, quiz.Questions[1].Order)
	assert.Contains(t, store.quizzes, quiz.ID)

	assert.Len(t, audit.entries, 1)
	assert.Contains(t, audit.entries[0].Action, "Created quiz")
}

func TestUpdateQuizMissing(t *testing.T) {
	svc, _, audit := newQuizFixture(t)

	_, err := svc.Update(moderator("admin1", "alex"), "missing", &QuizInput{
		TitleKey:       "t",
		DescriptionKey: "d",
		Questions:      []QuestionInput{{TextKey: "q", TimeLimit: 30}},
	})
	assert.Equal(t, util.ErrQuizNotFound, err)
	assert.Empty(t, audit.entries)
}

func TestDeleteQuizAudited(t *testing.T) {
	svc, store, audit := newQuizFixture(t)

	quiz, _ := svc.Create(moderator("admin1", "alex"), &QuizInput{
		TitleKey:       "quiz.police.title",
		DescriptionKey: "quiz.police.desc",
		Questions:      []QuestionInput{{TextKey: "q", TimeLimit: 60}},
	})

	assert.NoError(t, svc.Delete(moderator("admin1", "alex"), quiz.ID))
	assert.NotContains(t, store.quizzes, quiz.ID)
	assert.Len(t, audit.entries, 2)
	assert.Contains(t, audit.entries[1].Action, "Deleted quiz 'en:quiz.police.title'")
}
