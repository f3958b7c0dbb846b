package models

import "time"

// UserStats aggregates a user's learning activity across all collections.
type UserStats struct {
	SessionsStarted   int     `json:"sessions_started"`
	SessionsCompleted int     `json:"sessions_completed"`
	TotalScore        int     `json:"total_score"`
	CardsMastered     int     `json:"cards_mastered"`
	CardsDue          int     `json:"cards_due"`
	AverageEaseFactor float64 `json:"average_ease_factor"`
}

// CollectionStats aggregates activity on a single collection.
type CollectionStats struct {
	CollectionID      int64      `json:"collection_id"`
	FlashcardCount    int        `json:"flashcard_count"`
	SessionsStarted   int        `json:"sessions_started"`
	SessionsCompleted int        `json:"sessions_completed"`
	AverageScore      float64    `json:"average_score"`
	LastStudiedAt     *time.Time `json:"last_studied_at"`
}
