package entity

import "time"

// Session rows are created by the external auth layer on sign-in. This service
// only validates tokens against them and deletes them during rollback.
type Session struct {
	Base

	Token  string `gorm:"uniqueIndex"`
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	ExpiresAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}
