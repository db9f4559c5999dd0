package extractionRoutes

import (
	controllers "paperscan/controllers/extraction"
	"paperscan/middleware"
	bookValidators "paperscan/validators/book"
	validators "paperscan/validators/extraction"

	"github.com/gofiber/fiber/v2"
)

// SetupExtractionRoutes sets up question/solution extraction set routes
func SetupExtractionRoutes(app *fiber.App) {
	extractionGroup := app.Group("/extraction")

	// Question sets
	extractionGroup.Post("/question-set", middleware.JWTMiddleware, validators.CreateSet(), controllers.CreateQuestionSet)
	extractionGroup.Post("/question-set/:id/run", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.RunQuestionExtraction)
	extractionGroup.Get("/question-set/:id", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.GetQuestionSet)

	// Solution sets
	extractionGroup.Post("/solution-set", middleware.JWTMiddleware, validators.CreateSet(), controllers.CreateSolutionSet)
	extractionGroup.Post("/solution-set/:id/run", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.RunSolutionExtraction)
	extractionGroup.Get("/solution-set/:id", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.GetSolutionSet)
	extractionGroup.Post("/solution-set/:id/link", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.LinkSolutionSet)

	// Chapter overview
	extractionGroup.Get("/chapter/:chapterId", middleware.JWTMiddleware, bookValidators.IDParam("chapterId"), controllers.ListSetsByChapter)
}
