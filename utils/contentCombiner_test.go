package utils

import (
	"paperscan/database"
	"paperscan/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScanPage(t *testing.T, text string) uint {
	t.Helper()
	page := models.ScanPage{
		BookID:    1,
		ChapterID: 1,
		LatexText: text,
		Status:    models.ScanStatusCompleted,
	}
	require.NoError(t, database.Database.Db.Create(&page).Error)
	return page.ID
}

func TestCombineScanPagesPreservesCallerOrder(t *testing.T) {
	database.ConnectTestDb()

	first := seedScanPage(t, "FIRST PAGE CONTENT")
	second := seedScanPage(t, "SECOND PAGE CONTENT")
	third := seedScanPage(t, "THIRD PAGE CONTENT")

	// Request in reverse of insertion order; the database returns rows in
	// primary key order, the corpus must not
	corpus, err := CombineScanPages([]uint{third, first, second})
	require.NoError(t, err)

	posThird := strings.Index(corpus, "THIRD PAGE CONTENT")
	posFirst := strings.Index(corpus, "FIRST PAGE CONTENT")
	posSecond := strings.Index(corpus, "SECOND PAGE CONTENT")
	require.GreaterOrEqual(t, posThird, 0)
	require.GreaterOrEqual(t, posFirst, 0)
	require.GreaterOrEqual(t, posSecond, 0)
	assert.Less(t, posThird, posFirst)
	assert.Less(t, posFirst, posSecond)

	// Boundary markers carry the 1-based position in request order
	assert.Less(t, strings.Index(corpus, "%% ===== Document 1 ====="), posThird)
	assert.Contains(t, corpus, "%% ===== Document 2 =====")
	assert.Contains(t, corpus, "%% ===== Document 3 =====")
}

func TestCombineScanPagesMissingPageIsEmptySegment(t *testing.T) {
	database.ConnectTestDb()

	only := seedScanPage(t, "ONLY PAGE")

	corpus, err := CombineScanPages([]uint{only, 9999})
	require.NoError(t, err)

	assert.Contains(t, corpus, "ONLY PAGE")
	assert.Contains(t, corpus, "%% ===== Document 2 =====")
	// The missing document contributes nothing after its marker
	tail := corpus[strings.Index(corpus, "%% ===== Document 2 ====="):]
	assert.Equal(t, "%% ===== Document 2 =====\n", tail)
}

func TestCombineScanPagesEmptyTextLogsAndContinues(t *testing.T) {
	database.ConnectTestDb()

	blank := seedScanPage(t, "   ")
	full := seedScanPage(t, "REAL CONTENT")

	corpus, err := CombineScanPages([]uint{blank, full})
	require.NoError(t, err)

	assert.Contains(t, corpus, "REAL CONTENT")
	assert.NotContains(t, corpus, "   \n") // blank text is not emitted
}
