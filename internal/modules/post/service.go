package post

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/pagination"
	"github.com/quillblog/core/internal/pkg/response"
	"github.com/quillblog/core/internal/pkg/slug"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// published restricts a query to publicly visible posts.
func (s *Service) published(tx *gorm.DB) *gorm.DB {
	return tx.Where("status = ?", models.StatusPublished)
}

// List returns published posts matching the filter, newest first.
func (s *Service) List(q pagination.Query, f ListFilter) ([]models.PostModel, response.Pagination, error) {
	tx := s.published(s.db.Model(&models.PostModel{}))

	if f.CategorySlug != "" {
		tx = tx.Where("category_id IN (?)",
			s.db.Model(&models.CategoryModel{}).Select("id").Where("slug = ?", f.CategorySlug))
	}
	if f.TagSlug != "" {
		tx = tx.Where("id IN (?)",
			s.db.Table("post_tags").Select("post_id").Where("tag_id IN (?)",
				s.db.Model(&models.TagModel{}).Select("id").Where("slug = ?", f.TagSlug)))
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", like, like, like)
	}
	if f.AuthorID != "" {
		tx = tx.Where("author_id = ?", f.AuthorID)
	}

	tx = tx.Preload("Author").Preload("Category").Preload("Tags").
		Order("publish_at DESC")

	var posts []models.PostModel
	page, err := pagination.Paginate(tx, q, &posts)
	if err != nil {
		return nil, page, err
	}
	return posts, page, nil
}

// Latest returns the n most recently published posts.
func (s *Service) Latest(n int) ([]models.PostModel, error) {
	var posts []models.PostModel
	err := s.published(s.db).
		Preload("Author").Preload("Category").Preload("Tags").
		Order("publish_at DESC").Limit(n).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetForDate looks a post up by its publish day and slug. Drafts are only
// returned when includeDrafts is set. Returns (nil, nil) when not found.
func (s *Service) GetForDate(year, month, day int, postSlug string, includeDrafts bool) (*models.PostModel, error) {
	publishDay := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	tx := s.db.Where("publish_day = ? AND slug = ?", publishDay, postSlug)
	if !includeDrafts {
		tx = s.published(tx)
	}

	var post models.PostModel
	err := tx.Preload("Author").Preload("Category").Preload("Tags").First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByID returns (nil, nil) when the post does not exist.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("id = ?", id).First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create validates and stores a new post owned by authorID.
func (s *Service) Create(authorID string, dto *CreatePostDTO) (*models.PostModel, error) {
	status := dto.Status
	if status == "" {
		status = models.StatusDraft
	}
	if status != models.StatusDraft && status != models.StatusPublished {
		return nil, errBadStatus
	}
	if len(dto.Excerpt) > maxExcerptLen {
		return nil, errExcerptTooLong
	}

	postSlug := dto.Slug
	if postSlug == "" {
		postSlug = slug.Generate(dto.Title)
	}
	if !slug.Valid(postSlug) {
		return nil, errBadSlug
	}

	publishAt := time.Now()
	if dto.PublishAt != nil {
		publishAt = *dto.PublishAt
	}
	if taken, err := s.slugTaken(postSlug, publishAt, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, errSlugTaken
	}

	if dto.CategoryID != nil {
		if err := s.checkCategory(*dto.CategoryID); err != nil {
			return nil, err
		}
	}

	tags, err := s.resolveTags(dto.Tags)
	if err != nil {
		return nil, err
	}

	post := models.PostModel{
		Title:         dto.Title,
		Slug:          postSlug,
		AuthorID:      authorID,
		CategoryID:    dto.CategoryID,
		Tags:          tags,
		Excerpt:       dto.Excerpt,
		Content:       dto.Content,
		FeaturedImage: dto.FeaturedImage,
		Status:        status,
		PublishAt:     publishAt,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return s.GetByID(post.ID)
}

// Update applies the non-nil fields of dto to the post.
func (s *Service) Update(post *models.PostModel, dto *UpdatePostDTO) (*models.PostModel, error) {
	if dto.Title != nil {
		post.Title = *dto.Title
	}
	if dto.Slug != nil {
		if !slug.Valid(*dto.Slug) {
			return nil, errBadSlug
		}
		post.Slug = *dto.Slug
	}
	if dto.Status != nil {
		if *dto.Status != models.StatusDraft && *dto.Status != models.StatusPublished {
			return nil, errBadStatus
		}
		post.Status = *dto.Status
	}
	if dto.Excerpt != nil {
		if len(*dto.Excerpt) > maxExcerptLen {
			return nil, errExcerptTooLong
		}
		post.Excerpt = *dto.Excerpt
	}
	if dto.Content != nil {
		post.Content = *dto.Content
	}
	if dto.FeaturedImage != nil {
		post.FeaturedImage = *dto.FeaturedImage
	}
	if dto.PublishAt != nil {
		post.PublishAt = *dto.PublishAt
	}
	if dto.CategoryID != nil {
		if *dto.CategoryID == "" {
			post.CategoryID = nil
		} else {
			if err := s.checkCategory(*dto.CategoryID); err != nil {
				return nil, err
			}
			post.CategoryID = dto.CategoryID
		}
	}

	if taken, err := s.slugTaken(post.Slug, post.PublishAt, post.ID); err != nil {
		return nil, err
	} else if taken {
		return nil, errSlugTaken
	}

	if dto.Tags != nil {
		tags, err := s.resolveTags(*dto.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.db.Model(post).Association("Tags").Replace(tags); err != nil {
			return nil, err
		}
		post.Tags = tags
	}

	if err := s.db.Omit(clause.Associations).Save(post).Error; err != nil {
		return nil, err
	}
	return s.GetByID(post.ID)
}

// Delete removes a post together with its comments and tag links.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.PostModel{}).Error
	})
}

// IncrementViews bumps the view counter without touching updated_at.
func (s *Service) IncrementViews(id string) error {
	return s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (s *Service) slugTaken(postSlug string, publishAt time.Time, excludeID string) (bool, error) {
	tx := s.db.Model(&models.PostModel{}).
		Where("publish_day = ? AND slug = ?", publishAt.Format("2006-01-02"), postSlug)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) checkCategory(id string) error {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errCategoryNotFound
	}
	return nil
}

// resolveTags maps tag names to records, creating missing ones.
func (s *Service) resolveTags(names []string) ([]models.TagModel, error) {
	tags := make([]models.TagModel, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var tag models.TagModel
		err := s.db.Where("name = ?", name).
			Attrs(models.TagModel{Name: name, Slug: slug.Generate(name)}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
