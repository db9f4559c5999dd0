package scanController

import (
	"log"
	"paperscan/database"
	"paperscan/middleware"
	"paperscan/models"
	"paperscan/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadScanPage registers a scanned PDF for a chapter and submits it to
// the OCR service. Conversion is asynchronous; the OCR scheduler polls the
// job and fills in the LaTeX text.
func UploadScanPage(c *fiber.Ctx) error {
	reqData := new(struct {
		BookID     uint   `json:"book_id"`
		ChapterID  uint   `json:"chapter_id"`
		OrderIndex int    `json:"order_index"`
		FileName   string `json:"file_name"`
		PDFBase64  string `json:"pdf_base64"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var chapter models.Chapter
	if err := database.Database.Db.Where("id = ? AND book_id = ? AND is_deleted = false", reqData.ChapterID, reqData.BookID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	page := models.ScanPage{
		BookID:         reqData.BookID,
		ChapterID:      reqData.ChapterID,
		OrderIndex:     reqData.OrderIndex,
		SourceFileName: reqData.FileName,
		Status:         models.ScanStatusPending,
	}
	if err := database.Database.Db.Create(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create scan page!", nil)
	}

	jobID, err := utils.SubmitPDFToOCR(reqData.PDFBase64)
	if err != nil {
		log.Printf("OCR submit failed for page %d: %v", page.ID, err)
		page.Status = models.ScanStatusFailed
		page.ErrorMessage = err.Error()
		database.Database.Db.Save(&page)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "OCR submission failed!", page)
	}

	page.OCRJobID = jobID
	page.Status = models.ScanStatusProcessing
	if err := database.Database.Db.Save(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update scan page!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scan page submitted for OCR!", page)
}

// ListScanPages lists a chapter's pages in their caller-defined order
func ListScanPages(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
	}

	var pages []models.ScanPage
	if err := database.Database.Db.Where("chapter_id = ? AND is_deleted = false", chapterID).
		Order("order_index ASC").Find(&pages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch scan pages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scan pages fetched!", pages)
}

// GetScanPage returns one page including its OCR text and status
func GetScanPage(c *fiber.Ctx) error {
	pageID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page ID!", nil)
	}

	var page models.ScanPage
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", pageID).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Scan page not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scan page fetched!", page)
}

// ReorderScanPages rewrites the order index of a chapter's pages to match
// the supplied ID sequence
func ReorderScanPages(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
	}

	reqData := new(struct {
		PageIDs []uint `json:"page_ids"`
	})
	if err := c.BodyParser(reqData); err != nil || len(reqData.PageIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "page_ids is required!", nil)
	}

	for i, pageID := range reqData.PageIDs {
		result := database.Database.Db.Model(&models.ScanPage{}).
			Where("id = ? AND chapter_id = ? AND is_deleted = false", pageID, chapterID).
			Update("order_index", i+1)
		if result.Error != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder scan pages!", nil)
		}
		if result.RowsAffected == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Scan page does not belong to this chapter!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scan pages reordered!", nil)
}

// RetryScanPage resubmits a failed page to the OCR service. Completed pages
// are immutable and cannot be retried.
func RetryScanPage(c *fiber.Ctx) error {
	pageID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid page ID!", nil)
	}

	reqData := new(struct {
		PDFBase64 string `json:"pdf_base64"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.PDFBase64 == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "pdf_base64 is required!", nil)
	}

	var page models.ScanPage
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", pageID).First(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Scan page not found!", nil)
	}
	if page.Status == models.ScanStatusCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Completed pages cannot be re-converted!", nil)
	}

	jobID, err := utils.SubmitPDFToOCR(reqData.PDFBase64)
	if err != nil {
		log.Printf("OCR resubmit failed for page %d: %v", page.ID, err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "OCR submission failed!", nil)
	}

	page.OCRJobID = jobID
	page.Status = models.ScanStatusProcessing
	page.ErrorMessage = ""
	if err := database.Database.Db.Save(&page).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update scan page!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Scan page resubmitted for OCR!", page)
}
