package models

import "time"

type Flashcard struct {
	ID            int64     `json:"id"`
	CollectionID  int64     `json:"collection_id"`
	Term          string    `json:"term"`
	Definition    string    `json:"definition"`
	Pronunciation string    `json:"pronunciation"`
	ImagePath     string    `json:"image_path"`
	AudioPath     string    `json:"audio_path"`
	CreatedAt     time.Time `json:"created_at"`
}

// FlashcardDraft is an unsaved flashcard, e.g. one parsed from a CSV import.
type FlashcardDraft struct {
	Term          string `json:"term"`
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation"`
}
