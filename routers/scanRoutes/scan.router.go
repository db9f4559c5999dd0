package scanRoutes

import (
	controllers "paperscan/controllers/scan"
	"paperscan/middleware"
	bookValidators "paperscan/validators/book"
	validators "paperscan/validators/scan"

	"github.com/gofiber/fiber/v2"
)

// SetupScanRoutes sets up scan page upload and OCR tracking routes
func SetupScanRoutes(app *fiber.App) {
	scanGroup := app.Group("/scan")

	scanGroup.Post("/upload", middleware.JWTMiddleware, validators.UploadScanPage(), controllers.UploadScanPage)
	scanGroup.Get("/chapter/:chapterId", middleware.JWTMiddleware, bookValidators.IDParam("chapterId"), controllers.ListScanPages)
	scanGroup.Post("/chapter/:chapterId/reorder", middleware.JWTMiddleware, bookValidators.IDParam("chapterId"), validators.ReorderScanPages(), controllers.ReorderScanPages)
	scanGroup.Get("/:id", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.GetScanPage)
	scanGroup.Post("/:id/retry", middleware.JWTMiddleware, bookValidators.IDParam("id"), controllers.RetryScanPage)
}
