package models

import "time"

// ProgressRecord tracks spaced-repetition scheduling for a (user, flashcard)
// pair, independent of any single study session.
type ProgressRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	FlashcardID   int64     `json:"flashcard_id"`
	EaseFactor    float64   `json:"ease_factor"`
	IntervalDays  int       `json:"interval_days"`
	NextReviewAt  time.Time `json:"next_review_at"`
	StudyCount    int       `json:"study_count"`
	LastStudiedAt time.Time `json:"last_studied_at"`
	CreatedAt     time.Time `json:"created_at"`
}
