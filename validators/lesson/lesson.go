package lessonValidator

import (
	"paperscan/middleware"
	"paperscan/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// mergeSetsBody mirrors the controller's request shape for validation
type mergeSetsBody struct {
	QuestionSetID uint                `json:"question_set_id" validate:"required"`
	SolutionSetID uint                `json:"solution_set_id" validate:"required"`
	Mode          string              `json:"mode" validate:"omitempty,oneof=single auto_split manual_ranges"`
	ItemCount     int                 `json:"item_count"`
	Ranges        []utils.LessonRange `json:"ranges" validate:"dive"`
}

// MergeSets validates the merge request shape. Range bounds against the
// actual item count are validated in the controller once the sets are
// loaded.
func MergeSets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(mergeSetsBody)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if fieldErrors, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range fieldErrors {
					errors[fe.Field()] = "Failed validation: " + fe.Tag()
				}
			} else {
				errors["body"] = err.Error()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		errors := make(map[string]string)

		if reqData.Mode == "auto_split" && reqData.ItemCount <= 0 {
			errors["item_count"] = "Item count must be positive for auto split!"
		}
		if reqData.Mode == "manual_ranges" && len(reqData.Ranges) == 0 {
			errors["ranges"] = "At least one range is required for manual split!"
		}
		if reqData.Mode != "manual_ranges" && len(reqData.Ranges) > 0 {
			errors["ranges"] = "Ranges are only allowed in manual split mode!"
		}
		if reqData.Mode != "auto_split" && reqData.ItemCount > 0 {
			errors["item_count"] = "Item count is only allowed in auto split mode!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
