package post

import (
	"errors"
	"time"

	"github.com/quillblog/core/internal/models"
	"github.com/quillblog/core/internal/pkg/markdown"
)

const maxExcerptLen = 500

var (
	errSlugTaken        = errors.New("slug already used on this publish day")
	errBadSlug          = errors.New("slug may only contain letters, digits, hyphens or underscores")
	errBadStatus        = errors.New("status must be draft or published")
	errExcerptTooLong   = errors.New("excerpt must be at most 500 characters")
	errCategoryNotFound = errors.New("category not found")
)

// CreatePostDTO is the request body for creating a post. An empty slug is
// derived from the title.
type CreatePostDTO struct {
	Title         string     `json:"title"   binding:"required"`
	Slug          string     `json:"slug"`
	CategoryID    *string    `json:"category_id"`
	Tags          []string   `json:"tags"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content" binding:"required"`
	FeaturedImage string     `json:"featured_image"`
	Status        string     `json:"status"`
	PublishAt     *time.Time `json:"publish_at"`
}

// UpdatePostDTO is the request body for updating a post (all fields optional).
type UpdatePostDTO struct {
	Title         *string    `json:"title"`
	Slug          *string    `json:"slug"`
	CategoryID    *string    `json:"category_id"`
	Tags          *[]string  `json:"tags"`
	Excerpt       *string    `json:"excerpt"`
	Content       *string    `json:"content"`
	FeaturedImage *string    `json:"featured_image"`
	Status        *string    `json:"status"`
	PublishAt     *time.Time `json:"publish_at"`
}

// ListFilter narrows public post listings. All fields are optional and
// combine with AND; every listing is restricted to published posts.
type ListFilter struct {
	CategorySlug string
	TagSlug      string
	Search       string
	AuthorID     string
}

type Response struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Author        string     `json:"author,omitempty"`
	AuthorID      string     `json:"author_id"`
	Category      *string    `json:"category"`
	CategorySlug  *string    `json:"category_slug,omitempty"`
	Tags          []string   `json:"tags"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content,omitempty"`
	ContentHTML   string     `json:"content_html,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Status        string     `json:"status"`
	Views         int        `json:"views"`
	PublishAt     time.Time  `json:"publish_at"`
	Created       time.Time  `json:"created_at"`
	Modified      time.Time  `json:"updated_at"`
}

// toListResponse projects a post for listings: no body, no rendered HTML.
func toListResponse(p *models.PostModel) Response {
	r := Response{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		AuthorID:  p.AuthorID,
		Tags:      tagNames(p.Tags),
		Excerpt:   p.Excerpt,
		Status:    p.Status,
		Views:     p.Views,
		PublishAt: p.PublishAt,
		Created:   p.CreatedAt,
		Modified:  p.UpdatedAt,
	}
	if p.Author != nil {
		r.Author = p.Author.Username
	}
	if p.Category != nil {
		r.Category = &p.Category.Name
		r.CategorySlug = &p.Category.Slug
	}
	return r
}

// toDetailResponse additionally carries the raw content and rendered HTML.
func toDetailResponse(p *models.PostModel) Response {
	r := toListResponse(p)
	r.Content = p.Content
	r.ContentHTML = markdown.Render(p.Content)
	r.FeaturedImage = p.FeaturedImage
	return r
}

// ListProjections projects a slice of posts for listings.
func ListProjections(posts []models.PostModel) []Response {
	out := make([]Response, len(posts))
	for i := range posts {
		out[i] = toListResponse(&posts[i])
	}
	return out
}

func tagNames(tags []models.TagModel) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}
