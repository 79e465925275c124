package models

// CommentModel is a comment on a post. Comments form a flat arena keyed by
// id; ParentID is a nullable self reference and the tree is rebuilt on read
// by grouping replies under their parent. Root comments have ParentID nil.
type CommentModel struct {
	Base
	PostID     string         `json:"post_id"   gorm:"index;not null"`
	Post       *PostModel     `json:"-"         gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID   string         `json:"author_id" gorm:"index;not null"`
	Author     *UserModel     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	ParentID   *string        `json:"parent_id" gorm:"index"`
	Replies    []CommentModel `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Content    string         `json:"content"   gorm:"type:text;not null"`
	IsApproved bool           `json:"is_approved" gorm:"default:true;index"`
}

func (CommentModel) TableName() string { return "comments" }
