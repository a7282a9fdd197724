package repository

import (
	"horizon_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) ListAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.`order` asc")
	}).Order("created_at asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListOpen() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.`order` asc")
	}).Where("is_open = ?", true).Order("created_at asc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("quiz_questions.`order` asc")
	}).First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// Update rewrites the quiz row and replaces its question set in one
// transaction. Live sessions are unaffected because they snapshot the
// questions at start.
func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Updates(map[string]interface{}{
			"title_key":       quiz.TitleKey,
			"description_key": quiz.DescriptionKey,
			"is_open":         quiz.IsOpen,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}

		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
			quiz.Questions[i].Order = i
			if err := tx.Create(&quiz.Questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}
