package main

import (
	"log"
	"paperscan/config"
	"paperscan/database"
	authRoutes "paperscan/routers/authRoutes"
	bookRoutes "paperscan/routers/bookRoutes"
	extractionRoutes "paperscan/routers/extractionRoutes"
	lessonRoutes "paperscan/routers/lessonRoutes"
	scanRoutes "paperscan/routers/scanRoutes"
	"paperscan/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // Scanned PDFs arrive base64-encoded
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	bookRoutes.SetupBookRoutes(app)
	scanRoutes.SetupScanRoutes(app)
	extractionRoutes.SetupExtractionRoutes(app)
	lessonRoutes.SetupLessonRoutes(app)

	// Background OCR polling
	utils.StartOCRScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
