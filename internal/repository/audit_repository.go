package repository

import (
	"horizon_backend/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Append(entry *model.AuditLogEntry) error {
	return r.DB.Create(entry).Error
}

func (r *AuditRepository) ListAll() ([]model.AuditLogEntry, error) {
	var entries []model.AuditLogEntry
	err := r.DB.Order("created_at desc").Find(&entries).Error
	return entries, err
}
