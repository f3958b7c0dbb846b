package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/olenak/lingocards/internal/models"
)

func TestScheduleMastery_FirstMastery(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := ScheduleMastery(nil, 1, 42, now)

	assert.Equal(t, int64(1), rec.UserID)
	assert.Equal(t, int64(42), rec.FlashcardID)
	assert.Equal(t, InitialEaseFactor, rec.EaseFactor)
	assert.Equal(t, 1, rec.IntervalDays)
	assert.Equal(t, 1, rec.StudyCount)
	assert.Equal(t, now.Add(24*time.Hour), rec.NextReviewAt)
	assert.Equal(t, now, rec.LastStudiedAt)
}

func TestScheduleMastery_RepeatGrowsInterval(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	existing := &models.ProgressRecord{
		UserID:       1,
		FlashcardID:  42,
		EaseFactor:   2.5,
		IntervalDays: 1,
		StudyCount:   1,
	}

	rec := ScheduleMastery(existing, 1, 42, now)

	assert.InDelta(t, 2.6, rec.EaseFactor, 0.0001)
	assert.Equal(t, 2, rec.IntervalDays) // int(1 * 2.6)
	assert.Equal(t, 2, rec.StudyCount)
	assert.Equal(t, now.Add(2*24*time.Hour), rec.NextReviewAt)
}

func TestScheduleMastery_EaseFactorCapped(t *testing.T) {
	now := time.Now()
	existing := &models.ProgressRecord{EaseFactor: 3.0, IntervalDays: 10, StudyCount: 5}

	rec := ScheduleMastery(existing, 1, 42, now)

	assert.Equal(t, 3.0, rec.EaseFactor)
	assert.Equal(t, 30, rec.IntervalDays)
}

func TestScheduleMastery_IntervalNeverBelowOneDay(t *testing.T) {
	now := time.Now()
	existing := &models.ProgressRecord{EaseFactor: 0.1, IntervalDays: 1, StudyCount: 1}

	rec := ScheduleMastery(existing, 1, 42, now)

	assert.GreaterOrEqual(t, rec.IntervalDays, 1)
}
