package database

import (
	"log"
	"paperscan/models"
	extractionModels "paperscan/models/extraction"
	lessonModels "paperscan/models/lesson"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTestDb opens an in-memory SQLite database with the full schema
// and installs it as the global instance. Used by tests only.
func ConnectTestDb() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open in-memory database: %v", err)
	}

	// A pooled second connection to a plain :memory: DSN would see an empty
	// database; shared cache plus a single connection keeps the schema visible
	sqlDb, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDb.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Chapter{},
		&models.ScanPage{},
		&extractionModels.QuestionSet{},
		&extractionModels.SolutionSet{},
		&lessonModels.Lesson{},
		&lessonModels.LessonItem{},
	)
	if err != nil {
		log.Fatalf("Test migration failed: %v", err)
	}

	Database = DbInstance{Db: db}
	return db
}
