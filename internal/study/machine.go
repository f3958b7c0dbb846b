package study

import (
	"math/rand"
	"strings"
	"time"

	"github.com/olenak/lingocards/internal/models"
)

const (
	// CardsPerSession is the number of cards sampled into a fresh session.
	// Collections with fewer cards cannot be studied.
	CardsPerSession = 4

	// InitialCardScore is the point budget each card starts with.
	InitialCardScore = 30

	// WrongAnswerPenalty is subtracted from a card's score on each miss,
	// floored at zero.
	WrongAnswerPenalty = 5

	// InitialEaseFactor seeds the spaced-repetition schedule when a card
	// is mastered for the first time.
	InitialEaseFactor = 2.5
)

// Result reports the outcome of a single answer submission.
type Result struct {
	Correct       bool
	CorrectAnswer string
	// Mastered is the card removed from the session by this submission,
	// nil when no card reached mastery.
	Mastered *models.StudyCardState
}

// CurrentPhase derives a card's presentation phase from its sub-phase flags.
// Flags are passed in order: a card with no flags set is introduced first,
// then quizzed, then typed.
func CurrentPhase(card models.StudyCardState) models.Phase {
	switch {
	case !card.Intro:
		return models.PhaseIntroduction
	case !card.Quiz:
		return models.PhaseQuiz
	case !card.Typing:
		return models.PhaseTyping
	default:
		return models.PhaseCompleted
	}
}

// NewCardState projects a flashcard into its initial in-session state.
func NewCardState(card models.Flashcard) models.StudyCardState {
	return models.StudyCardState{
		FlashcardID:   card.ID,
		Term:          card.Term,
		Definition:    card.Definition,
		Pronunciation: card.Pronunciation,
		ImagePath:     card.ImagePath,
		AudioPath:     card.AudioPath,
		Score:         InitialCardScore,
	}
}

// NextIndex picks the next card index: uniform over [0, total) excluding
// current when more than one card remains. With a single card there is no
// other choice.
func NextIndex(rng *rand.Rand, current, total int) int {
	if total <= 1 {
		return 0
	}
	for {
		i := rng.Intn(total)
		if i != current {
			return i
		}
	}
}

// Advance applies a submitted answer to the session and mutates it in place.
//
// A correct answer (case-insensitive match against the current card's term)
// advances the card's first unset sub-phase flag. When all three flags are
// set the card is mastered: its remaining score is added to the session
// score, it is removed from the card set, and it is reported in the result
// so the caller can record a progress entry. A wrong answer costs the card
// five points (floored at zero), clears its intro flag, and forces the
// session back to the introduction phase without moving CurrentIndex.
func Advance(rng *rand.Rand, session *models.StudySession, answer string) Result {
	card := session.CurrentCard()
	if card == nil {
		return Result{}
	}

	correct := strings.EqualFold(strings.TrimSpace(answer), card.Term)
	res := Result{Correct: correct, CorrectAnswer: card.Term}

	if !correct {
		card.Score -= WrongAnswerPenalty
		if card.Score < 0 {
			card.Score = 0
		}
		// A miss always sends the card back to the introduction phase;
		// quiz/typing flags are kept so earlier progress is not lost.
		card.Intro = false
		session.Status = models.PhaseIntroduction
		return res
	}

	switch {
	case !card.Intro:
		card.Intro = true
	case !card.Quiz:
		card.Quiz = true
	case !card.Typing:
		card.Typing = true
	}

	if card.Intro && card.Quiz && card.Typing {
		mastered := *card
		res.Mastered = &mastered
		session.Score += mastered.Score
		session.Cards = append(session.Cards[:session.CurrentIndex], session.Cards[session.CurrentIndex+1:]...)

		if len(session.Cards) == 0 {
			session.CurrentIndex = -1
			session.Status = models.PhaseCompleted
			now := time.Now()
			session.EndTime = &now
			return res
		}

		session.CurrentIndex = NextIndex(rng, session.CurrentIndex, len(session.Cards))
		session.Status = CurrentPhase(session.Cards[session.CurrentIndex])
		return res
	}

	session.Status = CurrentPhase(*card)
	return res
}
