package repository

import (
	"horizon_backend/internal/model"

	"gorm.io/gorm"
)

type TranslationRepository struct {
	DB *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) *TranslationRepository {
	return &TranslationRepository{DB: db}
}

func (r *TranslationRepository) ListByLang(lang string) ([]model.Translation, error) {
	var entries []model.Translation
	err := r.DB.Where("lang = ?", lang).Find(&entries).Error
	return entries, err
}

func (r *TranslationRepository) Find(key, lang string) (*model.Translation, error) {
	var t model.Translation
	err := r.DB.Where("`key` = ? AND lang = ?", key, lang).First(&t).Error
	return &t, err
}

func (r *TranslationRepository) Upsert(t *model.Translation) error {
	var existing model.Translation
	err := r.DB.Where("`key` = ? AND lang = ?", t.Key, t.Lang).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(t).Error
	}
	if err != nil {
		return err
	}
	return r.DB.Model(&existing).Update("text", t.Text).Error
}
