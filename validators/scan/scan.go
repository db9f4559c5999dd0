package scanValidator

import (
	"encoding/base64"
	"paperscan/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UploadScanPage validates the scan upload request, including that the
// payload is decodable base64
func UploadScanPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BookID    uint   `json:"book_id"`
			ChapterID uint   `json:"chapter_id"`
			FileName  string `json:"file_name"`
			PDFBase64 string `json:"pdf_base64"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.BookID == 0 {
			errors["book_id"] = "Book ID is required!"
		}
		if reqData.ChapterID == 0 {
			errors["chapter_id"] = "Chapter ID is required!"
		}
		if strings.TrimSpace(reqData.FileName) == "" {
			errors["file_name"] = "File name is required!"
		}

		if reqData.PDFBase64 == "" {
			errors["pdf_base64"] = "PDF payload is required!"
		} else if _, err := base64.StdEncoding.DecodeString(reqData.PDFBase64); err != nil {
			errors["pdf_base64"] = "PDF payload is not valid base64!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ReorderScanPages validates the reorder request
func ReorderScanPages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PageIDs []uint `json:"page_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.PageIDs) == 0 {
			errors["page_ids"] = "At least one page ID is required!"
		}
		seen := make(map[uint]bool)
		for _, id := range reqData.PageIDs {
			if id == 0 {
				errors["page_ids"] = "Page IDs must be positive!"
				break
			}
			if seen[id] {
				errors["page_ids"] = "Page IDs must be unique!"
				break
			}
			seen[id] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
