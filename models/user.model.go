package models

import "gorm.io/gorm"

// User is created lazily the first time an email shows up in a request.
// There is no registration or login flow.
type User struct {
	gorm.Model
	Email string `json:"email" gorm:"unique;not null"`
	Name  string `json:"name" gorm:"default:''"`
}
