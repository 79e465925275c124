package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/imaging"
)

type Service struct {
	db        *gorm.DB
	uploadDir string
}

func NewService(db *gorm.DB, uploadDir string) *Service {
	return &Service{db: db, uploadDir: uploadDir}
}

// Get loads a user with their profile. Returns (nil, nil) when missing.
func (s *Service) Get(userID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Preload("Profile").Where("id = ?", userID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies account and profile edits in one transaction.
func (s *Service) Update(userID string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	user, err := s.Get(userID)
	if err != nil || user == nil {
		return user, err
	}

	if dto.Username != nil && *dto.Username != user.Username {
		var count int64
		if err := s.db.Model(&models.UserModel{}).
			Where("username = ? AND id <> ?", *dto.Username, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errUsernameTaken
		}
		user.Username = *dto.Username
	}
	if dto.Email != nil && *dto.Email != user.Email {
		var count int64
		if err := s.db.Model(&models.UserModel{}).
			Where("email = ? AND id <> ?", *dto.Email, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errEmailTaken
		}
		user.Email = *dto.Email
	}

	if dto.Bio != nil {
		user.Profile.Bio = *dto.Bio
	}
	if dto.Location != nil {
		user.Profile.Location = *dto.Location
	}
	if dto.Website != nil {
		user.Profile.Website = *dto.Website
	}
	if dto.BirthDate != nil {
		if *dto.BirthDate == "" {
			user.Profile.BirthDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *dto.BirthDate)
			if err != nil {
				return nil, errBadBirthDate
			}
			user.Profile.BirthDate = &d
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserModel{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"username": user.Username, "email": user.Email}).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProfileModel{}).Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"bio":        user.Profile.Bio,
				"location":   user.Profile.Location,
				"website":    user.Profile.Website,
				"birth_date": user.Profile.BirthDate,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// SaveAvatar downsizes the uploaded image, stores it under the upload
// directory and records its public path on the profile.
func (s *Service) SaveAvatar(userID string, data []byte) (*models.UserModel, error) {
	thumb, err := imaging.Thumbnail(data, imaging.MaxAvatarSize)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.uploadDir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s.jpg", userID)
	if err := os.WriteFile(filepath.Join(dir, name), thumb, 0o644); err != nil {
		return nil, err
	}

	publicPath := "/uploads/avatars/" + name
	err = s.db.Model(&models.ProfileModel{}).Where("user_id = ?", userID).
		Update("avatar", publicPath).Error
	if err != nil {
		return nil, err
	}
	return s.Get(userID)
}
