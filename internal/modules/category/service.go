package category

import (
	"gorm.io/gorm"

	"github.com/quillblog/core/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// WithCount pairs a category with its published post count.
type WithCount struct {
	models.CategoryModel
	PostCount int64 `json:"post_count"`
}

// List returns all categories ordered by name, each with the number of
// published posts in it.
func (s *Service) List() ([]WithCount, error) {
	var categories []WithCount
	err := s.db.Model(&models.CategoryModel{}).
		Select("categories.*, (SELECT COUNT(*) FROM posts WHERE posts.category_id = categories.id AND posts.status = ?) AS post_count",
			models.StatusPublished).
		Order("name ASC").
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug returns (nil, nil) when the category does not exist.
func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := s.db.Where("slug = ?", slug).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetByID returns (nil, nil) when the category does not exist.
func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := s.db.Where("id = ?", id).First(&category).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
