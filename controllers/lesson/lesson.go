package lessonController

import (
	"encoding/json"
	"log"
	"paperscan/database"
	"paperscan/middleware"
	"paperscan/models"
	extractionModels "paperscan/models/extraction"
	lessonModels "paperscan/models/lesson"
	"paperscan/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/datatypes"
)

// Lesson creation modes
const (
	ModeSingle       = "single"
	ModeAutoSplit    = "auto_split"
	ModeManualRanges = "manual_ranges"
)

// MergeSetsRequest is the merge endpoint body. Mode parameters are mutually
// exclusive: ItemCount for auto_split, Ranges for manual_ranges.
type MergeSetsRequest struct {
	QuestionSetID uint                `json:"question_set_id" validate:"required"`
	SolutionSetID uint                `json:"solution_set_id" validate:"required"`
	Mode          string              `json:"mode" validate:"omitempty,oneof=single auto_split manual_ranges"`
	Name          string              `json:"name"`
	SectionLabel  string              `json:"section_label"`
	ItemCount     int                 `json:"item_count"`
	Ranges        []utils.LessonRange `json:"ranges"`
}

// nextDisplayOrder computes the chapter-scoped display order (max+1)
func nextDisplayOrder(chapterID uint) int {
	var maxOrder int
	database.Database.Db.Model(&lessonModels.Lesson{}).
		Where("chapter_id = ? AND is_deleted = false", chapterID).
		Select("COALESCE(MAX(display_order), 0)").Scan(&maxOrder)
	return maxOrder + 1
}

// createLessonWithItems inserts one lesson and its items. The lesson insert
// and the item inserts are separate writes; a crash in between leaves a
// lesson without items.
func createLessonWithItems(bookID, chapterID uint, name, sectionLabel, labelRange string, items []utils.MergedItem) (*lessonModels.Lesson, error) {
	toc, err := json.Marshal(utils.BuildLessonToc(items))
	if err != nil {
		return nil, err
	}

	newLesson := lessonModels.Lesson{
		BookID:       bookID,
		ChapterID:    chapterID,
		Name:         name,
		SectionLabel: sectionLabel,
		LabelRange:   labelRange,
		DisplayOrder: nextDisplayOrder(chapterID),
		Toc:          datatypes.JSON(toc),
	}
	if err := database.Database.Db.Create(&newLesson).Error; err != nil {
		return nil, err
	}

	for i, item := range items {
		choices, _ := json.Marshal(item.Choices)
		lessonItem := lessonModels.LessonItem{
			LessonID:       newLesson.ID,
			Label:          item.Label,
			QuestionText:   item.QuestionText,
			Choices:        datatypes.JSON(choices),
			AnswerKey:      item.AnswerKey,
			WorkedSolution: item.WorkedSolution,
			Explanation:    item.Explanation,
			VisualPath:     item.VisualPath,
			HasSolution:    item.HasSolution,
			OrderIndex:     i + 1,
		}
		if err := database.Database.Db.Create(&lessonItem).Error; err != nil {
			log.Printf("Failed to insert item %d of lesson %d: %v", i+1, newLesson.ID, err)
			return nil, err
		}
	}

	return &newLesson, nil
}

// MergeSets merges a completed question set and solution set into lessons.
// Supports single-lesson, fixed-size auto-split and manual label-range
// modes; manual-range validation failures reject the whole batch.
func MergeSets(c *fiber.Ctx) error {
	reqData := new(MergeSetsRequest)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Mode == "" {
		reqData.Mode = ModeSingle
	}

	var questionSet extractionModels.QuestionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", reqData.QuestionSetID).First(&questionSet).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question set not found!", nil)
	}
	var solutionSet extractionModels.SolutionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", reqData.SolutionSetID).First(&solutionSet).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Solution set not found!", nil)
	}

	if questionSet.Status != extractionModels.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question set is not completed!", nil)
	}
	if solutionSet.Status != extractionModels.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Solution set is not completed!", nil)
	}
	if questionSet.BookID != solutionSet.BookID || questionSet.ChapterID != solutionSet.ChapterID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Sets belong to different books or chapters!", nil)
	}

	var questionResult extractionModels.QuestionResult
	if err := json.Unmarshal(questionSet.Result, &questionResult); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Question set payload is corrupt!", nil)
	}
	var solutionResult extractionModels.SolutionResult
	if err := json.Unmarshal(solutionSet.Result, &solutionResult); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Solution set payload is corrupt!", nil)
	}

	merged := utils.MergeQuestionSolutionRecords(questionResult.Questions, solutionResult.Solutions)
	if len(merged) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question set has no questions to merge!", nil)
	}

	name := reqData.Name
	if name == "" {
		name = "Lesson"
	}

	var lessons []lessonModels.Lesson
	var warnings []string

	switch reqData.Mode {
	case ModeSingle:
		created, err := createLessonWithItems(questionSet.BookID, questionSet.ChapterID,
			name, reqData.SectionLabel, utils.LabelRangeSummary(merged, 1), merged)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
		}
		lessons = append(lessons, *created)

	case ModeAutoSplit:
		if reqData.ItemCount <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "item_count must be positive for auto split!", nil)
		}
		position := 1
		for _, chunk := range utils.ChunkMergedItems(merged, reqData.ItemCount) {
			created, err := createLessonWithItems(questionSet.BookID, questionSet.ChapterID,
				name, reqData.SectionLabel, utils.LabelRangeSummary(chunk, position), chunk)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
			}
			lessons = append(lessons, *created)
			position += len(chunk)
		}

	case ModeManualRanges:
		rangeWarnings, err := utils.ValidateLessonRanges(reqData.Ranges, len(merged))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		warnings = rangeWarnings
		for _, w := range warnings {
			log.Printf("Merge warning for question set %d: %s", questionSet.ID, w)
		}
		for _, r := range reqData.Ranges {
			chunk := merged[r.Start-1 : r.End]
			created, err := createLessonWithItems(questionSet.BookID, questionSet.ChapterID,
				r.Name, r.SectionLabel, utils.LabelRangeSummary(chunk, r.Start), chunk)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
			}
			lessons = append(lessons, *created)
		}

	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown merge mode!", nil)
	}

	// Record provenance if the solution set was not linked yet
	if solutionSet.QuestionSetID == nil {
		solutionSet.QuestionSetID = &questionSet.ID
		if err := database.Database.Db.Save(&solutionSet).Error; err != nil {
			log.Printf("Failed to record provenance link on solution set %d: %v", solutionSet.ID, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons created!", fiber.Map{
		"lessons":  lessons,
		"warnings": warnings,
	})
}

// ListLessons lists a chapter's lessons ordered by display order
func ListLessons(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
	}

	var lessons []lessonModels.Lesson
	if err := database.Database.Db.Where("chapter_id = ? AND is_deleted = false", chapterID).
		Order("display_order ASC").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched!", lessons)
}

// GetLesson returns one lesson with its items in position order
func GetLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
	}

	var found lessonModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", lessonID).First(&found).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var items []lessonModels.LessonItem
	database.Database.Db.Where("lesson_id = ? AND is_deleted = false", lessonID).
		Order("order_index ASC").Find(&items)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched!", fiber.Map{
		"lesson": found,
		"items":  items,
	})
}

// DeleteLesson soft deletes a lesson and its items
func DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson ID!", nil)
	}

	var found lessonModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", lessonID).First(&found).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	found.IsDeleted = true
	if err := database.Database.Db.Save(&found).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}
	database.Database.Db.Model(&lessonModels.LessonItem{}).
		Where("lesson_id = ?", lessonID).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted!", nil)
}

// DashboardStats returns digitization counters for the admin dashboard
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db
	today := now.BeginningOfDay()

	var bookCount, pageCount, pendingPages, lessonCount int64
	db.Model(&models.Book{}).Where("is_deleted = false").Count(&bookCount)
	db.Model(&models.ScanPage{}).Where("is_deleted = false").Count(&pageCount)
	db.Model(&models.ScanPage{}).Where("status IN ? AND is_deleted = false",
		[]string{models.ScanStatusPending, models.ScanStatusProcessing}).Count(&pendingPages)
	db.Model(&lessonModels.Lesson{}).Where("is_deleted = false").Count(&lessonCount)

	var questionSetsToday, solutionSetsToday int64
	db.Model(&extractionModels.QuestionSet{}).Where("created_at >= ? AND is_deleted = false", today).Count(&questionSetsToday)
	db.Model(&extractionModels.SolutionSet{}).Where("created_at >= ? AND is_deleted = false", today).Count(&solutionSetsToday)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched!", fiber.Map{
		"books":               bookCount,
		"scan_pages":          pageCount,
		"pending_pages":       pendingPages,
		"lessons":             lessonCount,
		"question_sets_today": questionSetsToday,
		"solution_sets_today": solutionSetsToday,
	})
}
