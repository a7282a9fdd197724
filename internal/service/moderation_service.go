package service

import (
	"fmt"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"
	"horizon_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionStore is the persistence contract for applications, satisfied
// by the gorm submission repository. UpdateStatus runs the check callback
// against the current row inside the same transaction.
type SubmissionStore interface {
	ListAll() ([]model.QuizSubmission, error)
	ListByUser(userID string) ([]model.QuizSubmission, error)
	FindByID(id string) (*model.QuizSubmission, error)
	UpdateStatus(id string, status model.SubmissionStatus, adminID, adminUsername string, check func(*model.QuizSubmission) error) error
}

// AuditStore extends the writer with the admin-facing read path.
type AuditStore interface {
	AuditWriter
	ListAll() ([]model.AuditLogEntry, error)
}

// ModerationService owns the application review flow: claiming, deciding
// and the audit trail. Claim ownership is enforced on the server, not just
// hidden in the UI.
type ModerationService struct {
	Subs     SubmissionStore
	Audit    AuditStore
	Notifier Notifier
}

func NewModerationService(subs SubmissionStore, audit AuditStore, notifier Notifier) *ModerationService {
	return &ModerationService{Subs: subs, Audit: audit, Notifier: notifier}
}

func (s *ModerationService) ListAll() ([]model.QuizSubmission, error) {
	return s.Subs.ListAll()
}

func (s *ModerationService) ListByUser(userID string) ([]model.QuizSubmission, error) {
	return s.Subs.ListByUser(userID)
}

func (s *ModerationService) FindByID(id string) (*model.QuizSubmission, error) {
	sub, err := s.Subs.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// SetStatus applies one status transition on behalf of an admin.
// pending -> taken claims the application for that admin; a claimed
// application can only be accepted or refused by the admin who claimed it.
// Terminal states never change again.
func (s *ModerationService) SetStatus(admin *util.Claims, id string, to model.SubmissionStatus) (*model.QuizSubmission, error) {
	switch to {
	case model.StatusTaken, model.StatusAccepted, model.StatusRefused:
	default:
		return nil, util.ErrInvalidTransition
	}

	err := s.Subs.UpdateStatus(id, to, admin.UserID, admin.Username, func(current *model.QuizSubmission) error {
		if !model.ValidTransition(current.Status, to) {
			return util.ErrInvalidTransition
		}
		if current.Status == model.StatusTaken && current.AdminID != admin.UserID {
			return util.ErrNotClaimOwner
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	sub, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.audit(admin, fmt.Sprintf("Updated status of %s's application for '%s' to %s",
		sub.Username, sub.QuizTitle, to))

	if s.Notifier != nil && (to == model.StatusAccepted || to == model.StatusRefused) {
		s.Notifier.DecisionMade(sub)
	}
	return sub, nil
}

func (s *ModerationService) AuditLog() ([]model.AuditLogEntry, error) {
	return s.Audit.ListAll()
}

func (s *ModerationService) audit(admin *util.Claims, action string) {
	err := s.Audit.Append(&model.AuditLogEntry{
		AdminID:       admin.UserID,
		AdminUsername: admin.Username,
		Action:        action,
	})
	if err != nil {
		logger.Log.Error("writing audit entry", zap.String("action", action), zap.Error(err))
	}
}
