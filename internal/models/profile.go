package models

import "time"

// ProfileModel extends a user account with display information. Every user
// has exactly one profile, created in the same transaction as the account.
type ProfileModel struct {
	Base
	UserID    string     `json:"-"        gorm:"uniqueIndex;not null"`
	Bio       string     `json:"bio"      gorm:"type:text"`
	Avatar    string     `json:"avatar"`
	Location  string     `json:"location"`
	Website   string     `json:"website"`
	BirthDate *time.Time `json:"birth_date"`
}

func (ProfileModel) TableName() string { return "profiles" }
