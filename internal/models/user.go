package models

// UserModel is a registered account. Staff accounts may edit or delete any
// post or comment regardless of ownership.
type UserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email"    gorm:"uniqueIndex;not null"`
	Password string `json:"-"        gorm:"not null"`
	IsStaff  bool   `json:"is_staff" gorm:"default:false"`

	Profile *ProfileModel `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }
