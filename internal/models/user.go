package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is the owner of all other resources. Users never share
// accounts, categories or transactions with each other.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	FirstName    string
	LastName     string
	Phone        string
}

// BeforeSave normalizes the email address and trims whitespace
// from all strings.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Phone = strings.TrimSpace(u.Phone)

	return nil
}
