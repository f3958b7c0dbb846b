package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/olenak/lingocards/internal/models"
)

// ParseCSV reads flashcard drafts from CSV input. Expected columns are
// term, definition and an optional pronunciation. A header row is skipped
// when its first column is the literal "term".
func ParseCSV(r io.Reader) ([]models.FlashcardDraft, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var drafts []models.FlashcardDraft
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line+1, err)
		}
		line++

		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "term") {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("csv line %d: expected at least 2 columns, got %d", line, len(record))
		}

		draft := models.FlashcardDraft{
			Term:       strings.TrimSpace(record[0]),
			Definition: strings.TrimSpace(record[1]),
		}
		if len(record) > 2 {
			draft.Pronunciation = strings.TrimSpace(record[2])
		}
		if draft.Term == "" || draft.Definition == "" {
			return nil, fmt.Errorf("csv line %d: term and definition are required", line)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}
