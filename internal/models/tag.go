package models

// TagModel labels posts. Tags are shared freely; no ownership.
type TagModel struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	Posts []PostModel `json:"posts,omitempty" gorm:"many2many:post_tags;joinForeignKey:TagID;joinReferences:PostID"`
}

func (TagModel) TableName() string { return "tags" }
