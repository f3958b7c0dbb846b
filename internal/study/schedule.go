package study

import (
	"time"

	"github.com/olenak/lingocards/internal/models"
)

// ScheduleMastery computes the spaced-repetition progress record written
// when a card is mastered. The first mastery seeds the schedule (ease 2.5,
// one-day interval, study count 1); repeat masteries grow the interval by
// the ease factor and bump the ease slightly, capped to keep review dates
// sane.
func ScheduleMastery(existing *models.ProgressRecord, userID, flashcardID int64, now time.Time) models.ProgressRecord {
	if existing == nil {
		return models.ProgressRecord{
			UserID:        userID,
			FlashcardID:   flashcardID,
			EaseFactor:    InitialEaseFactor,
			IntervalDays:  1,
			NextReviewAt:  now.Add(24 * time.Hour),
			StudyCount:    1,
			LastStudiedAt: now,
		}
	}

	rec := *existing

	const maxEase = 3.0
	rec.EaseFactor += 0.1
	if rec.EaseFactor > maxEase {
		rec.EaseFactor = maxEase
	}

	interval := int(float64(rec.IntervalDays) * rec.EaseFactor)
	if interval < 1 {
		interval = 1
	}
	rec.IntervalDays = interval
	rec.NextReviewAt = now.Add(time.Duration(interval) * 24 * time.Hour)
	rec.StudyCount++
	rec.LastStudiedAt = now
	return rec
}
