package utils

import (
	"fmt"
	"log"
	"paperscan/database"
	"paperscan/models"
	"strings"
)

// CombineScanPages concatenates the LaTeX text of the given scan pages into
// one corpus, in the exact order of the supplied IDs regardless of the order
// the database returns them in. Each document is preceded by a greppable
// boundary marker with its 1-based position. Missing or empty pages
// contribute an empty segment and are logged, never fatal.
func CombineScanPages(pageIDs []uint) (string, error) {
	var pages []models.ScanPage
	if err := database.Database.Db.Where("id IN ? AND is_deleted = false", pageIDs).Find(&pages).Error; err != nil {
		return "", fmt.Errorf("failed to fetch scan pages: %v", err)
	}

	// Re-key by ID so concatenation follows the caller-supplied order
	pagesByID := make(map[uint]models.ScanPage, len(pages))
	for _, page := range pages {
		pagesByID[page.ID] = page
	}

	var builder strings.Builder
	for i, id := range pageIDs {
		builder.WriteString(fmt.Sprintf("\n%%%% ===== Document %d =====\n", i+1))

		page, ok := pagesByID[id]
		if !ok {
			log.Printf("Scan page %d not found, adding empty segment", id)
			continue
		}
		if strings.TrimSpace(page.LatexText) == "" {
			log.Printf("Scan page %d has no LaTeX text, adding empty segment", id)
			continue
		}

		builder.WriteString(page.LatexText)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
