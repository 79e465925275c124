package comment

import (
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/quillblog/core/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Add stores a new comment on a published post. Replies must point at a
// comment on the same post.
func (s *Service) Add(postID, authorID string, dto *AddCommentDTO) (*models.CommentModel, error) {
	content := strings.TrimSpace(dto.Content)
	if n := utf8.RuneCountInString(content); n < minContentLen || n > maxContentLen {
		return nil, errContentLength
	}

	var post models.PostModel
	err := s.db.Where("id = ? AND status = ?", postID, models.StatusPublished).First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, err
	}

	if dto.ParentID != nil {
		var parent models.CommentModel
		err := s.db.Where("id = ?", *dto.ParentID).First(&parent).Error
		if err == gorm.ErrRecordNotFound {
			return nil, errParentNotFound
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, errParentMismatch
		}
	}

	comment := models.CommentModel{
		PostID:     postID,
		AuthorID:   authorID,
		ParentID:   dto.ParentID,
		Content:    content,
		IsApproved: true,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return s.GetByID(comment.ID)
}

// GetByID returns (nil, nil) when the comment does not exist.
func (s *Service) GetByID(id string) (*models.CommentModel, error) {
	var comment models.CommentModel
	err := s.db.Preload("Author").Where("id = ?", id).First(&comment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// TreeForPost returns the approved comments of a post as a tree of root
// comments with replies nested to any depth, oldest first on every level.
// Replies whose parent is unapproved are hidden with it.
func (s *Service) TreeForPost(postID string) ([]CommentResponse, error) {
	var comments []models.CommentModel
	err := s.db.Preload("Author").
		Where("post_id = ? AND is_approved = ?", postID, true).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	children := make(map[string][]*models.CommentModel)
	var rootComments []*models.CommentModel
	for i := range comments {
		c := &comments[i]
		if c.ParentID == nil {
			rootComments = append(rootComments, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var build func(c *models.CommentModel) CommentResponse
	build = func(c *models.CommentModel) CommentResponse {
		r := toResponse(c)
		for _, child := range children[c.ID] {
			r.Replies = append(r.Replies, build(child))
		}
		return r
	}

	roots := []CommentResponse{}
	for _, c := range rootComments {
		roots = append(roots, build(c))
	}
	return roots, nil
}

// Delete removes a comment and every descendant reply.
func (s *Service) Delete(id string) error {
	ids := []string{id}
	frontier := []string{id}
	for len(frontier) > 0 {
		var children []string
		err := s.db.Model(&models.CommentModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return err
		}
		ids = append(ids, children...)
		frontier = children
	}
	return s.db.Where("id IN ?", ids).Delete(&models.CommentModel{}).Error
}

// SetApproved flips the moderation flag.
func (s *Service) SetApproved(id string, approved bool) (*models.CommentModel, error) {
	comment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, errNotFound
	}
	err = s.db.Model(comment).Update("is_approved", approved).Error
	if err != nil {
		return nil, err
	}
	comment.IsApproved = approved
	return comment, nil
}
