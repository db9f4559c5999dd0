package bookRoutes

import (
	controllers "paperscan/controllers/book"
	"paperscan/middleware"
	validators "paperscan/validators/book"

	"github.com/gofiber/fiber/v2"
)

// SetupBookRoutes sets up book and chapter management routes
func SetupBookRoutes(app *fiber.App) {
	bookGroup := app.Group("/book")

	// Book CRUD
	bookGroup.Post("/create", middleware.JWTMiddleware, validators.CreateBook(), controllers.CreateBook)
	bookGroup.Get("/list", middleware.JWTMiddleware, controllers.ListBooks)
	bookGroup.Get("/:id", middleware.JWTMiddleware, validators.IDParam("id"), controllers.GetBook)
	bookGroup.Put("/:id", middleware.JWTMiddleware, validators.IDParam("id"), controllers.UpdateBook)
	bookGroup.Delete("/:id", middleware.JWTMiddleware, validators.IDParam("id"), controllers.DeleteBook)

	// Chapter Management
	bookGroup.Post("/:id/chapter", middleware.JWTMiddleware, validators.IDParam("id"), validators.CreateChapter(), controllers.CreateChapter)

	chapterGroup := app.Group("/chapter")
	chapterGroup.Put("/:chapterId", middleware.JWTMiddleware, validators.IDParam("chapterId"), controllers.UpdateChapter)
	chapterGroup.Delete("/:chapterId", middleware.JWTMiddleware, validators.IDParam("chapterId"), controllers.DeleteChapter)
}
