package lessonRoutes

import (
	controllers "paperscan/controllers/lesson"
	"paperscan/middleware"
	bookValidators "paperscan/validators/book"
	validators "paperscan/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

// SetupLessonRoutes sets up lesson merge and browse routes
func SetupLessonRoutes(app *fiber.App) {
	lessonGroup := app.Group("/lesson")

	lessonGroup.Post("/merge", middleware.JWTMiddleware, validators.MergeSets(), controllers.MergeSets)
	lessonGroup.Get("/list/:chapterId", middleware.JWTMiddleware, bookValidators.IDParam("chapterId"), controllers.ListLessons)
	lessonGroup.Get("/dashboard/stats", middleware.JWTMiddleware, controllers.DashboardStats)
	lessonGroup.Get("/:id", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.GetLesson)
	lessonGroup.Delete("/:id", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.DeleteLesson)
}
