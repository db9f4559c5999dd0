package models

import "gorm.io/gorm"

// Scan page conversion statuses
const (
	ScanStatusPending    = "pending"
	ScanStatusProcessing = "processing"
	ScanStatusCompleted  = "completed"
	ScanStatusFailed     = "failed"
)

// ScanPage represents one OCR'd source document (a scanned PDF page or page range)
type ScanPage struct {
	gorm.Model
	BookID         uint   `json:"book_id" gorm:"index;not null"`
	ChapterID      uint   `json:"chapter_id" gorm:"index;not null"`
	OrderIndex     int    `json:"order_index" gorm:"default:0"` // Caller-supplied sequence within the chapter
	SourceFileName string `json:"source_file_name"`
	LatexText      string `json:"latex_text" gorm:"type:text"` // OCR output, immutable once completed
	Status         string `json:"status" gorm:"default:'pending'"`
	OCRJobID       string `json:"ocr_job_id"` // Job handle at the OCR service
	ErrorMessage   string `json:"error_message"`
	IsDeleted      bool   `gorm:"default:false"`
}
