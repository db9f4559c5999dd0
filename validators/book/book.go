package bookValidator

import (
	"paperscan/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateBook validates book creation
func CreateBook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   string `json:"title"`
			Author  string `json:"author"`
			Subject string `json:"subject"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// CreateChapter validates chapter creation
func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title  string `json:"title"`
			Number int    `json:"number"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Number < 0 {
			errors["number"] = "Chapter number cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// IDParam validates that the named route parameter is a positive integer
func IDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := strconv.Atoi(c.Params(name))
		if err != nil || value <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+name+" parameter!", nil)
		}
		return c.Next()
	}
}
