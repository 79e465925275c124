package comment

import (
	"errors"
	"time"

	"github.com/quillblog/core/internal/models"
)

const (
	minContentLen = 5
	maxContentLen = 1000
)

var (
	errContentLength  = errors.New("comment must be between 5 and 1000 characters")
	errPostNotFound   = errors.New("post not found")
	errParentNotFound = errors.New("parent comment not found")
	errParentMismatch = errors.New("parent comment belongs to a different post")
	errNotFound       = errors.New("comment not found")
)

type AddCommentDTO struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id"`
}

type ApproveCommentDTO struct {
	Approved *bool `json:"approved" binding:"required"`
}

// CommentResponse is a comment with its approved replies nested inside.
type CommentResponse struct {
	ID       string            `json:"id"`
	PostID   string            `json:"post_id"`
	Author   string            `json:"author"`
	AuthorID string            `json:"author_id"`
	Content  string            `json:"content"`
	Approved bool              `json:"approved"`
	Created  time.Time         `json:"created_at"`
	Replies  []CommentResponse `json:"replies"`
}

func toResponse(m *models.CommentModel) CommentResponse {
	r := CommentResponse{
		ID:       m.ID,
		PostID:   m.PostID,
		AuthorID: m.AuthorID,
		Content:  m.Content,
		Approved: m.IsApproved,
		Created:  m.CreatedAt,
		Replies:  []CommentResponse{},
	}
	if m.Author != nil {
		r.Author = m.Author.Username
	}
	return r
}
