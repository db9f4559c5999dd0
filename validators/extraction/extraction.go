package extractionValidator

import (
	"paperscan/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateSet validates creation of a question or solution set. Page
// existence and book/chapter consistency are checked by the controller
// against the database.
func CreateSet() fiber.Handler {
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
		for _, id := range reqData.PageIDs {
			if id == 0 {
				errors["page_ids"] = "Page IDs must be positive!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
