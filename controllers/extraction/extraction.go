package extractionController

import (
	"encoding/json"
	"fmt"
	"log"
	"paperscan/database"
	"paperscan/middleware"
	"paperscan/models"
	extractionModels "paperscan/models/extraction"
	"paperscan/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

const questionParseInstructions = `The document contains numbered exam questions in LaTeX. ` +
	`Return a JSON object {"questions": [{"question_label", "text", "choices"}]} where choices ` +
	`is the ordered list of answer choices. Keep all LaTeX markup intact.`

const solutionParseInstructions = `The document contains numbered exam solutions in LaTeX. ` +
	`Return a JSON object {"solutions": [{"question_label", "answer_key", "worked_solution", "explanation"}]}. ` +
	`Keep all LaTeX markup intact.`

// resolvePages checks that every page ID exists, is OCR-completed and that
// all pages belong to one book and one chapter (derived from the first
// page). Returns that book and chapter.
func resolvePages(pageIDs []uint) (uint, uint, error) {
	if len(pageIDs) == 0 {
		return 0, 0, fmt.Errorf("at least one scan page is required")
	}

	var pages []models.ScanPage
	if err := database.Database.Db.Where("id IN ? AND is_deleted = false", pageIDs).Find(&pages).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to fetch scan pages: %v", err)
	}

	pagesByID := make(map[uint]models.ScanPage, len(pages))
	for _, page := range pages {
		pagesByID[page.ID] = page
	}

	var bookID, chapterID uint
	for i, id := range pageIDs {
		page, ok := pagesByID[id]
		if !ok {
			return 0, 0, fmt.Errorf("scan page %d not found", id)
		}
		if page.Status != models.ScanStatusCompleted {
			return 0, 0, fmt.Errorf("scan page %d is not OCR-completed (status %s)", id, page.Status)
		}
		if i == 0 {
			bookID = page.BookID
			chapterID = page.ChapterID
			continue
		}
		if page.BookID != bookID || page.ChapterID != chapterID {
			return 0, 0, fmt.Errorf("scan page %d belongs to a different book or chapter", id)
		}
	}

	return bookID, chapterID, nil
}

// CreateQuestionSet creates a pending question extraction set from an
// ordered list of scan page IDs
func CreateQuestionSet(c *fiber.Ctx) error {
	reqData := new(struct {
		PageIDs []uint `json:"page_ids"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	bookID, chapterID, err := resolvePages(reqData.PageIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	pageIDsJSON, _ := json.Marshal(reqData.PageIDs)
	set := extractionModels.QuestionSet{
		BookID:    bookID,
		ChapterID: chapterID,
		PageIDs:   datatypes.JSON(pageIDsJSON),
		Status:    extractionModels.StatusPending,
	}
	if err := database.Database.Db.Create(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question set!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question set created!", set)
}

// CreateSolutionSet creates a pending solution extraction set, optionally
// linked to a question set at creation time
func CreateSolutionSet(c *fiber.Ctx) error {
	reqData := new(struct {
		PageIDs       []uint `json:"page_ids"`
		QuestionSetID *uint  `json:"question_set_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	bookID, chapterID, err := resolvePages(reqData.PageIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	if reqData.QuestionSetID != nil {
		var questionSet extractionModels.QuestionSet
		if err := database.Database.Db.Where("id = ? AND is_deleted = false", *reqData.QuestionSetID).First(&questionSet).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Linked question set not found!", nil)
		}
		if questionSet.BookID != bookID || questionSet.ChapterID != chapterID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Linked question set belongs to a different book or chapter!", nil)
		}
	}

	pageIDsJSON, _ := json.Marshal(reqData.PageIDs)
	set := extractionModels.SolutionSet{
		BookID:        bookID,
		ChapterID:     chapterID,
		QuestionSetID: reqData.QuestionSetID,
		PageIDs:       datatypes.JSON(pageIDsJSON),
		Status:        extractionModels.StatusPending,
	}
	if err := database.Database.Db.Create(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create solution set!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Solution set created!", set)
}

// RunQuestionExtraction marks the set processing and launches the
// extraction in the background. The caller polls GET /question-set/:id for
// completion; invoking run twice concurrently on one set is not guarded.
func RunQuestionExtraction(c *fiber.Ctx) error {
	setID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid set ID!", nil)
	}

	var set extractionModels.QuestionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", setID).First(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question set not found!", nil)
	}
	if set.Status == extractionModels.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question set is already completed!", nil)
	}

	set.Status = extractionModels.StatusProcessing
	set.ErrorMessage = ""
	if err := database.Database.Db.Save(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question set!", nil)
	}

	go runQuestionExtractionJob(set.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question extraction started!", fiber.Map{"set_id": set.ID})
}

// RunSolutionExtraction is the solution-side counterpart of
// RunQuestionExtraction
func RunSolutionExtraction(c *fiber.Ctx) error {
	setID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid set ID!", nil)
	}

	var set extractionModels.SolutionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", setID).First(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Solution set not found!", nil)
	}
	if set.Status == extractionModels.StatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Solution set is already completed!", nil)
	}

	set.Status = extractionModels.StatusProcessing
	set.ErrorMessage = ""
	if err := database.Database.Db.Save(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update solution set!", nil)
	}

	go runSolutionExtractionJob(set.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Solution extraction started!", fiber.Map{"set_id": set.ID})
}

// runQuestionExtractionJob combines the set's pages, runs the external
// parser and stores the recovered questions. Runs detached; all outcomes
// land on the set row.
func runQuestionExtractionJob(setID uint) {
	db := database.Database.Db

	var set extractionModels.QuestionSet
	if err := db.First(&set, setID).Error; err != nil {
		log.Printf("Question set %d vanished before extraction: %v", setID, err)
		return
	}

	var pageIDs []uint
	if err := json.Unmarshal(set.PageIDs, &pageIDs); err != nil {
		failQuestionSet(&set, fmt.Errorf("corrupt page ID list: %v", err))
		return
	}

	corpus, err := utils.CombineScanPages(pageIDs)
	if err != nil {
		failQuestionSet(&set, err)
		return
	}

	jobID, err := utils.SubmitParseJob(corpus, questionParseInstructions)
	if err != nil {
		failQuestionSet(&set, err)
		return
	}

	raw, err := utils.WaitForParseResult(jobID)
	if err != nil {
		failQuestionSet(&set, err)
		return
	}

	// Recovery never errors; degraded output is persisted as-is
	result := utils.RecoverQuestionBlocks(raw)

	payload, err := json.Marshal(result)
	if err != nil {
		failQuestionSet(&set, fmt.Errorf("failed to encode result: %v", err))
		return
	}

	set.Result = datatypes.JSON(payload)
	set.Status = extractionModels.StatusCompleted
	set.ErrorMessage = ""
	if err := db.Save(&set).Error; err != nil {
		log.Printf("Failed to store question set %d result: %v", set.ID, err)
		return
	}

	log.Printf("Question set %d completed with %d questions", set.ID, len(result.Questions))
	utils.SendExtractionStatusEmail("question", set.ID, extractionModels.StatusCompleted, "")
}

// runSolutionExtractionJob additionally backfills visual regions and worked
// solutions from the raw corpus, then normalizes LaTeX blocks.
func runSolutionExtractionJob(setID uint) {
	db := database.Database.Db

	var set extractionModels.SolutionSet
	if err := db.First(&set, setID).Error; err != nil {
		log.Printf("Solution set %d vanished before extraction: %v", setID, err)
		return
	}

	var pageIDs []uint
	if err := json.Unmarshal(set.PageIDs, &pageIDs); err != nil {
		failSolutionSet(&set, fmt.Errorf("corrupt page ID list: %v", err))
		return
	}

	corpus, err := utils.CombineScanPages(pageIDs)
	if err != nil {
		failSolutionSet(&set, err)
		return
	}

	jobID, err := utils.SubmitParseJob(corpus, solutionParseInstructions)
	if err != nil {
		failSolutionSet(&set, err)
		return
	}

	raw, err := utils.WaitForParseResult(jobID)
	if err != nil {
		failSolutionSet(&set, err)
		return
	}

	result := utils.RecoverSolutionBlocks(raw)

	// Patch up truncated solutions and missing figures from the pre-parser
	// corpus, then store everything in single-line LaTeX form
	utils.BackfillSolutionDetails(result.Solutions, corpus)
	for i := range result.Solutions {
		result.Solutions[i].WorkedSolution = utils.NormalizeLatexBlocks(result.Solutions[i].WorkedSolution)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		failSolutionSet(&set, fmt.Errorf("failed to encode result: %v", err))
		return
	}

	set.Result = datatypes.JSON(payload)
	set.Status = extractionModels.StatusCompleted
	set.ErrorMessage = ""
	if err := db.Save(&set).Error; err != nil {
		log.Printf("Failed to store solution set %d result: %v", set.ID, err)
		return
	}

	log.Printf("Solution set %d completed: %s", set.ID, utils.SolutionBackfillSummary(result.Solutions))
	utils.SendExtractionStatusEmail("solution", set.ID, extractionModels.StatusCompleted, "")
}

func failQuestionSet(set *extractionModels.QuestionSet, cause error) {
	log.Printf("Question set %d failed: %v", set.ID, cause)
	set.Status = extractionModels.StatusFailed
	set.ErrorMessage = cause.Error()
	if err := database.Database.Db.Save(set).Error; err != nil {
		log.Printf("Failed to record question set %d failure: %v", set.ID, err)
	}
	utils.SendExtractionStatusEmail("question", set.ID, extractionModels.StatusFailed, cause.Error())
}

func failSolutionSet(set *extractionModels.SolutionSet, cause error) {
	log.Printf("Solution set %d failed: %v", set.ID, cause)
	set.Status = extractionModels.StatusFailed
	set.ErrorMessage = cause.Error()
	if err := database.Database.Db.Save(set).Error; err != nil {
		log.Printf("Failed to record solution set %d failure: %v", set.ID, err)
	}
	utils.SendExtractionStatusEmail("solution", set.ID, extractionModels.StatusFailed, cause.Error())
}

// GetQuestionSet returns the set row for status polling
func GetQuestionSet(c *fiber.Ctx) error {
	setID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid set ID!", nil)
	}

	var set extractionModels.QuestionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", setID).First(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question set not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question set fetched!", set)
}

// GetSolutionSet returns the set row for status polling
func GetSolutionSet(c *fiber.Ctx) error {
	setID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid set ID!", nil)
	}

	var set extractionModels.SolutionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", setID).First(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Solution set not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Solution set fetched!", set)
}

// ListSetsByChapter lists both set kinds for a chapter
func ListSetsByChapter(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
	}

	var questionSets []extractionModels.QuestionSet
	database.Database.Db.Where("chapter_id = ? AND is_deleted = false", chapterID).
		Order("created_at DESC").Find(&questionSets)

	var solutionSets []extractionModels.SolutionSet
	database.Database.Db.Where("chapter_id = ? AND is_deleted = false", chapterID).
		Order("created_at DESC").Find(&solutionSets)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Extraction sets fetched!", fiber.Map{
		"question_sets": questionSets,
		"solution_sets": solutionSets,
	})
}

// LinkSolutionSet sets the provenance link from a solution set to a
// question set. Linking is the only mutation allowed after completion.
func LinkSolutionSet(c *fiber.Ctx) error {
	setID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid set ID!", nil)
	}

	reqData := new(struct {
		QuestionSetID uint `json:"question_set_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.QuestionSetID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "question_set_id is required!", nil)
	}

	var set extractionModels.SolutionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", setID).First(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Solution set not found!", nil)
	}

	var questionSet extractionModels.QuestionSet
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", reqData.QuestionSetID).First(&questionSet).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question set not found!", nil)
	}
	if questionSet.BookID != set.BookID || questionSet.ChapterID != set.ChapterID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question set belongs to a different book or chapter!", nil)
	}

	set.QuestionSetID = &questionSet.ID
	if err := database.Database.Db.Save(&set).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to link solution set!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Solution set linked!", set)
}
