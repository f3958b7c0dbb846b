package models

import "time"

// Phase is the macro-phase of a study session. It mirrors the sub-phase
// flags of the card at CurrentIndex, except that a wrong answer forces
// the session back to the introduction phase.
type Phase string

const (
	PhaseIntroduction Phase = "introduction"
	PhaseQuiz         Phase = "quiz"
	PhaseTyping       Phase = "typing"
	PhaseCompleted    Phase = "completed"
)

// StudyCardState is a flashcard's mutable state within a session: a
// projection of the underlying flashcard plus sub-phase flags and the
// remaining point budget for the card.
type StudyCardState struct {
	FlashcardID   int64  `json:"flashcardId"`
	Term          string `json:"term"`
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation"`
	ImagePath     string `json:"imagePath"`
	AudioPath     string `json:"audioPath"`
	Intro         bool   `json:"intro"`
	Quiz          bool   `json:"quiz"`
	Typing        bool   `json:"typing"`
	Score         int    `json:"score"`
}

// StudySession is the per-(user, collection) in-progress study attempt.
// Cards is persisted as a JSON blob; CurrentIndex is -1 when no card is
// selected (session completed).
type StudySession struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"userId"`
	CollectionID int64            `json:"collectionId"`
	Cards        []StudyCardState `json:"flashcards"`
	CurrentIndex int              `json:"currentIndex"`
	Status       Phase            `json:"status"`
	Score        int              `json:"score"`
	StartTime    time.Time        `json:"startTime"`
	EndTime      *time.Time       `json:"endTime"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// CurrentCard returns the card at CurrentIndex, or nil when no card is
// selected.
func (s *StudySession) CurrentCard() *StudyCardState {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Cards) {
		return nil
	}
	return &s.Cards[s.CurrentIndex]
}
