package lesson

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson is a named, ordered group of merged question/solution items
// belonging to one chapter. DisplayOrder is chapter-scoped (max+1).
type Lesson struct {
	gorm.Model
	BookID       uint           `json:"book_id" gorm:"index;not null"`
	ChapterID    uint           `json:"chapter_id" gorm:"index;not null"`
	Name         string         `json:"name"`
	SectionLabel string         `json:"section_label"`
	LabelRange   string         `json:"label_range"` // e.g. "1-25"
	DisplayOrder int            `json:"display_order" gorm:"default:0"`
	Toc          datatypes.JSON `json:"toc"` // Table-of-contents entries
	IsDeleted    bool           `gorm:"default:false"`
}

// LessonItem combines one question with its matched solution (if any)
type LessonItem struct {
	gorm.Model
	LessonID       uint           `json:"lesson_id" gorm:"index;not null"`
	Label          string         `json:"question_label"`
	QuestionText   string         `json:"text" gorm:"type:text"`
	Choices        datatypes.JSON `json:"choices"` // Ordered array of choice strings
	AnswerKey      string         `json:"answer_key"`
	WorkedSolution string         `json:"worked_solution" gorm:"type:text"`
	Explanation    string         `json:"explanation" gorm:"type:text"`
	VisualPath     string         `json:"visual_path"`
	HasSolution    bool           `json:"has_solution" gorm:"default:false"`
	OrderIndex     int            `json:"order_index" gorm:"default:0"` // Position within the lesson
	IsDeleted      bool           `gorm:"default:false"`
}

// TocEntry is one table-of-contents line for a lesson item. Choice
// sub-entries carry a lettered sub-label extracted from the choice text.
type TocEntry struct {
	Label    string     `json:"label"`
	Text     string     `json:"text"`
	Children []TocEntry `json:"children,omitempty"`
}
