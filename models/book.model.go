package models

import "gorm.io/gorm"

// Book represents a scanned exam paper collection or textbook
type Book struct {
	gorm.Model
	Title     string `json:"title"`
	Author    string `json:"author"`
	Subject   string `json:"subject"`
	Status    string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, ARCHIVED
	IsDeleted bool   `gorm:"default:false"`
}

// Chapter represents a chapter/section within a book
type Chapter struct {
	gorm.Model
	BookID     uint   `json:"book_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Number     int    `json:"number" gorm:"default:1"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Chapter order in book
	IsDeleted  bool   `gorm:"default:false"`
}
