package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the quote number string from components.
// Uses "-" as separator to avoid conflicts with reference numbers that contain "/".
func formatQuoteNumber(projectRef string, year, sequence int) string {
	return fmt.Sprintf("GII-Q-%s-%d-%03d", projectRef, year, sequence)
}

// GenerateQuoteNumber creates the next quote number for a project.
// Format: GII-Q-{project_ref}-{year}-{sequence}
// - project_ref: project's reference_number (falls back to project ID if empty)
// - year: calendar year of issue
// - sequence: 3-digit zero-padded, per project per year
func GenerateQuoteNumber(app *pocketbase.PocketBase, projectId string, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectId)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectId
	}

	year := now.Year()

	// Count existing quotes for this project with a matching year prefix
	prefix := fmt.Sprintf("GII-Q-%s-%d-", projectRef, year)

	existingQuotes, err := app.FindRecordsByFilter(
		"quotes",
		"project = {:projectId} && quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"projectId": projectId,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		// If collection doesn't exist or no records, start at 1
		existingQuotes = nil
	}

	nextSeq := len(existingQuotes) + 1

	return formatQuoteNumber(projectRef, year, nextSeq), nil
}
