package tag

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

// WithCount pairs a tag with its published post count.
type WithCount struct {
	models.TagModel
	PostCount int64 `json:"post_count"`
}

// List returns all tags ordered by name with their published post counts.
func (s *Service) List() ([]WithCount, error) {
	var tags []WithCount
	err := s.db.Model(&models.TagModel{}).
		Select("tags.*, (SELECT COUNT(*) FROM post_tags JOIN posts ON posts.id = post_tags.post_id WHERE post_tags.tag_id = tags.id AND posts.status = ?) AS post_count",
			models.StatusPublished).
		Order("name ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// GetBySlug returns (nil, nil) when the tag does not exist.
func (s *Service) GetBySlug(slug string) (*models.TagModel, error) {
	var tag models.TagModel
	err := s.db.Where("slug = ?", slug).First(&tag).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
