package models

import (
	"time"

	"gorm.io/gorm"
)

// Post publication states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// PostModel is a blog post. The slug only has to be unique among posts
// published on the same day, so friendly slugs can be reused across dates;
// PublishDay is derived from PublishAt to carry the composite unique index.
type PostModel struct {
	Base
	Title         string         `json:"title"          gorm:"not null"`
	Slug          string         `json:"slug"           gorm:"not null;uniqueIndex:idx_posts_day_slug"`
	PublishDay    string         `json:"-"              gorm:"type:char(10);not null;uniqueIndex:idx_posts_day_slug"`
	AuthorID      string         `json:"author_id"      gorm:"index;not null"`
	Author        *UserModel     `json:"author,omitempty"   gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CategoryID    *string        `json:"category_id"    gorm:"index"`
	Category      *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags          []TagModel     `json:"tags,omitempty" gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID"`
	Excerpt       string         `json:"excerpt"        gorm:"type:varchar(500)"`
	Content       string         `json:"content"        gorm:"type:longtext"`
	FeaturedImage string         `json:"featured_image"`
	Status        string         `json:"status"         gorm:"type:varchar(10);default:draft;index"`
	Views         int            `json:"views"          gorm:"default:0"`
	PublishAt     time.Time      `json:"publish_at"     gorm:"index"`
}

func (PostModel) TableName() string { return "posts" }

// IsPublished reports whether the post is publicly visible.
func (p *PostModel) IsPublished() bool { return p.Status == StatusPublished }

func (p *PostModel) BeforeSave(tx *gorm.DB) error {
	if p.PublishAt.IsZero() {
		p.PublishAt = time.Now()
	}
	p.PublishDay = p.PublishAt.Format("2006-01-02")
	return nil
}
