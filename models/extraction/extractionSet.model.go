package extraction

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Extraction set statuses
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// QuestionSet groups ordered scan pages submitted for question extraction
type QuestionSet struct {
	gorm.Model
	BookID       uint           `json:"book_id" gorm:"index;not null"`
	ChapterID    uint           `json:"chapter_id" gorm:"index;not null"`
	PageIDs      datatypes.JSON `json:"page_ids"` // Ordered array of scan page IDs
	Status       string         `json:"status" gorm:"default:'pending'"`
	ErrorMessage string         `json:"error_message"`
	Result       datatypes.JSON `json:"result"` // {"questions": [...]}
	IsDeleted    bool           `gorm:"default:false"`
}

// SolutionSet groups ordered scan pages submitted for solution extraction.
// QuestionSetID is an optional provenance link, settable after completion.
type SolutionSet struct {
	gorm.Model
	BookID        uint           `json:"book_id" gorm:"index;not null"`
	ChapterID     uint           `json:"chapter_id" gorm:"index;not null"`
	QuestionSetID *uint          `json:"question_set_id" gorm:"index"`
	PageIDs       datatypes.JSON `json:"page_ids"` // Ordered array of scan page IDs
	Status        string         `json:"status" gorm:"default:'pending'"`
	ErrorMessage  string         `json:"error_message"`
	Result        datatypes.JSON `json:"result"` // {"solutions": [...]}
	IsDeleted     bool           `gorm:"default:false"`
}
