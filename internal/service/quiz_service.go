package service

import (
	"fmt"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"
	"horizon_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizAdminStore is the full CRUD contract, satisfied by the gorm quiz
// repository.
type QuizAdminStore interface {
	QuizStore
	ListAll() ([]model.Quiz, error)
	ListOpen() ([]model.Quiz, error)
	Create(*model.Quiz) error
	Update(*model.Quiz) error
	Delete(id string) error
}

// AuditWriter records one entry per admin mutation.
type AuditWriter interface {
	Append(*model.AuditLogEntry) error
}

type QuizInput struct {
	TitleKey       string          `json:"titleKey" binding:"required"`
	DescriptionKey string          `json:"descriptionKey" binding:"required"`
	IsOpen         bool            `json:"isOpen"`
	Questions      []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

type QuestionInput struct {
	TextKey   string `json:"textKey" binding:"required"`
	TimeLimit int    `json:"timeLimit" binding:"required,gt=0"`
}

// QuizService is the admin-facing quiz catalog: CRUD with validation and
// an audit trail. The public read path is served straight off the store.
type QuizService struct {
	Repo       QuizAdminStore
	Audit      AuditWriter
	Translator Translator
}

func NewQuizService(repo QuizAdminStore, audit AuditWriter, translator Translator) *QuizService {
	return &QuizService{Repo: repo, Audit: audit, Translator: translator}
}

func (s *QuizService) ListAll() ([]model.Quiz, error) {
	return s.Repo.ListAll()
}

func (s *QuizService) ListOpen() ([]model.Quiz, error) {
	return s.Repo.ListOpen()
}

func (s *QuizService) FindByID(id string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Create(admin *util.Claims, in *QuizInput) (*model.Quiz, error) {
	quiz := s.buildQuiz(in)
	quiz.ID = model.GenerateUUID()

	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}

	s.audit(admin, fmt.Sprintf("Created quiz '%s'", s.title(quiz)))
	return quiz, nil
}

func (s *QuizService) Update(admin *util.Claims, id string, in *QuizInput) (*model.Quiz, error) {
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}

	quiz := s.buildQuiz(in)
	quiz.ID = id

	if err := s.Repo.Update(quiz); err != nil {
		return nil, err
	}

	s.audit(admin, fmt.Sprintf("Updated quiz '%s'", s.title(quiz)))
	return s.FindByID(id)
}

func (s *QuizService) Delete(admin *util.Claims, id string) error {
	quiz, err := s.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(id); err != nil {
		return err
	}

	s.audit(admin, fmt.Sprintf("Deleted quiz '%s'", s.title(quiz)))
	return nil
}

func (s *QuizService) buildQuiz(in *QuizInput) *model.Quiz {
	quiz := &model.Quiz{
		TitleKey:       in.TitleKey,
		DescriptionKey: in.DescriptionKey,
		IsOpen:         in.IsOpen,
	}
	for i, q := range in.Questions {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			UUIDBase:  model.UUIDBase{ID: model.GenerateUUID()},
			TextKey:   q.TextKey,
			TimeLimit: q.TimeLimit,
			Order:     i,
		})
	}
	return quiz
}

// title resolves the quiz title in the default language for audit lines.
func (s *QuizService) title(quiz *model.Quiz) string {
	return s.Translator.T(DefaultLanguage, quiz.TitleKey)
}

func (s *QuizService) audit(admin *util.Claims, action string) {
	err := s.Audit.Append(&model.AuditLogEntry{
		AdminID:       admin.UserID,
		AdminUsername: admin.Username,
		Action:        action,
	})
	if err != nil {
		logger.Log.Error("writing audit entry", zap.String("action", action), zap.Error(err))
	}
}
