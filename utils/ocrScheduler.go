package utils

import (
	"log"
	"paperscan/database"
	"paperscan/models"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[OCR-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// pollProcessingScans advances every scan page stuck in processing: polls
// the OCR service once per page and stores the LaTeX text on completion.
func pollProcessingScans() {
	db := database.Database.Db

	var pages []models.ScanPage
	if err := db.Where("status = ? AND ocr_job_id <> '' AND is_deleted = false", models.ScanStatusProcessing).
		Find(&pages).Error; err != nil {
		logScheduler("Error fetching processing scan pages: " + err.Error())
		return
	}

	for _, page := range pages {
		status, err := PollOCRJob(page.OCRJobID)
		if err != nil {
			logScheduler("Poll failed for page " + page.SourceFileName + ": " + err.Error())
			continue
		}

		switch status.Status {
		case "completed":
			page.LatexText = status.Latex
			page.Status = models.ScanStatusCompleted
			page.ErrorMessage = ""
			if err := db.Save(&page).Error; err != nil {
				logScheduler("Error saving completed page: " + err.Error())
			} else {
				logScheduler("Scan page " + page.SourceFileName + " completed")
			}
		case "error":
			page.Status = models.ScanStatusFailed
			page.ErrorMessage = status.Error
			if page.ErrorMessage == "" {
				page.ErrorMessage = "OCR conversion failed"
			}
			if err := db.Save(&page).Error; err != nil {
				logScheduler("Error saving failed page: " + err.Error())
			}
		}
		// Any other status: still converting, try again next tick
	}
}

// StartOCRScheduler runs the OCR polling job every minute
func StartOCRScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("@every 1m", pollProcessingScans); err != nil {
		log.Fatalf("Failed to register OCR scheduler: %v", err)
	}

	c.Start()
	logScheduler("OCR polling scheduler started (every 1m)")
}
