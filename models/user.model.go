package models

import "gorm.io/gorm"

// User represents an admin/operator account
type User struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"default:'OPERATOR'"` // OPERATOR, ADMIN
	IsDeleted bool   `gorm:"default:false"`
}
