package repository

import (
	"time"

	"horizon_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	return &user, err
}

// Upsert writes the identity snapshot taken from Discord at login time.
func (r *UserRepository) Upsert(user *model.User) error {
	var existing model.User
	err := r.DB.First(&existing, "id = ?", user.ID).Error
	if err == gorm.ErrRecordNotFound {
		user.LastLogin = time.Now()
		user.LastSeen = time.Now()
		return r.DB.Create(user).Error
	}
	if err != nil {
		return err
	}

	return r.DB.Model(&existing).Updates(map[string]interface{}{
		"username":   user.Username,
		"avatar":     user.Avatar,
		"is_admin":   user.IsAdmin,
		"role_name":  user.RoleName,
		"role_color": user.RoleColor,
		"last_login": time.Now(),
	}).Error
}

func (r *UserRepository) UpdateLastSeen(userID string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("last_seen", time.Now()).Error
}

func (r *UserRepository) UpdateLanguage(userID, lang string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).Update("language", lang).Error
}
