package extractionController

import (
	"paperscan/database"
	"paperscan/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPage(t *testing.T, bookID, chapterID uint, status string) uint {
	t.Helper()
	page := models.ScanPage{
		BookID:    bookID,
		ChapterID: chapterID,
		LatexText: "x + y = z",
		Status:    status,
	}
	require.NoError(t, database.Database.Db.Create(&page).Error)
	return page.ID
}

func TestResolvePagesSameChapterCompleted(t *testing.T) {
	database.ConnectTestDb()

	first := seedPage(t, 3, 7, models.ScanStatusCompleted)
	second := seedPage(t, 3, 7, models.ScanStatusCompleted)

	bookID, chapterID, err := resolvePages([]uint{first, second})
	require.NoError(t, err)
	assert.Equal(t, uint(3), bookID)
	assert.Equal(t, uint(7), chapterID)
}

func TestResolvePagesRejectsEmptyList(t *testing.T) {
	database.ConnectTestDb()

	_, _, err := resolvePages([]uint{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one scan page")
}

func TestResolvePagesRejectsMissingPage(t *testing.T) {
	database.ConnectTestDb()

	existing := seedPage(t, 1, 1, models.ScanStatusCompleted)

	_, _, err := resolvePages([]uint{existing, 424242})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestResolvePagesRejectsIncompletePage(t *testing.T) {
	database.ConnectTestDb()

	done := seedPage(t, 1, 1, models.ScanStatusCompleted)
	pending := seedPage(t, 1, 1, models.ScanStatusProcessing)

	_, _, err := resolvePages([]uint{done, pending})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not OCR-completed")
}

func TestResolvePagesRejectsMixedChapter(t *testing.T) {
	database.ConnectTestDb()

	a := seedPage(t, 5, 10, models.ScanStatusCompleted)
	b := seedPage(t, 5, 11, models.ScanStatusCompleted)

	_, _, err := resolvePages([]uint{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different book or chapter")
}

func TestResolvePagesRejectsMixedBook(t *testing.T) {
	database.ConnectTestDb()

	a := seedPage(t, 5, 10, models.ScanStatusCompleted)
	b := seedPage(t, 6, 10, models.ScanStatusCompleted)

	_, _, err := resolvePages([]uint{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different book or chapter")
}
