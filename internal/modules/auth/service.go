package auth

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/jwt"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates an account together with its empty profile. The two rows
// are written in one transaction so a user can never exist without a profile.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", dto.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errUsernameTaken
	}
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Username: dto.Username,
		Email:    dto.Email,
		Password: string(hash),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.ProfileModel{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(user.ID)
}

// Login checks the credentials and issues a token.
func (s *Service) Login(dto *LoginDTO) (string, *models.UserModel, error) {
	var user models.UserModel
	err := s.db.Preload("Profile").Where("username = ?", dto.Username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil, errBadCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return "", nil, errBadCredentials
	}

	token, err := jwt.Sign(user.ID, jwt.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// GetByID returns (nil, nil) when the account does not exist.
func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Preload("Profile").Where("id = ?", id).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
