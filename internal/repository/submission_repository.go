package repository

import (
	"horizon_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.QuizSubmission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) ListAll() ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	err := r.DB.Order("submitted_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByUser(userID string) ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByID(id string) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

// UpdateStatus applies a status change under a row lock so concurrent
// moderators racing on the same submission serialize. The check callback
// sees the locked row and decides whether the transition may proceed.
func (r *SubmissionRepository) UpdateStatus(id string, status model.SubmissionStatus, adminID, adminUsername string, check func(*model.QuizSubmission) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var s model.QuizSubmission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error; err != nil {
			return err
		}

		if check != nil {
			if err := check(&s); err != nil {
				return err
			}
		}

		return tx.Model(&s).Updates(map[string]interface{}{
			"status":         status,
			"admin_id":       adminID,
			"admin_username": adminUsername,
		}).Error
	})
}
