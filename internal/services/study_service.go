package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
	"github.com/olenak/lingocards/internal/study"
)

// CheckResult is the outcome of one answer submission, paired with the
// updated session state. The session serializes under the nextPhase key
// so clients read the new phase and card set from one place.
type CheckResult struct {
	Correct       bool                 `json:"isCorrect"`
	CorrectAnswer string               `json:"correctAnswer"`
	Session       *models.StudySession `json:"nextPhase"`
}

// StudyService orchestrates study sessions: starting, answering and
// resuming. All mutation of a (user, collection) session is serialized
// through an in-process keyed lock so concurrent submissions cannot lose
// updates.
type StudyService interface {
	Start(ctx context.Context, userID, collectionID int64) (*models.StudySession, error)
	CheckAnswer(ctx context.Context, userID, collectionID int64, answer string) (*CheckResult, error)
	GetCurrent(ctx context.Context, userID, collectionID int64) (*models.StudySession, error)
}

type studyService struct {
	sessions    repository.SessionRepository
	flashcards  repository.FlashcardRepository
	progress    repository.ProgressRepository
	collections CollectionService

	locks sync.Map // session key -> *sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewStudyService creates a new StudyService
func NewStudyService(
	sessions repository.SessionRepository,
	flashcards repository.FlashcardRepository,
	progress repository.ProgressRepository,
	collections CollectionService,
) StudyService {
	return &studyService{
		sessions:    sessions,
		flashcards:  flashcards,
		progress:    progress,
		collections: collections,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *studyService) lock(userID, collectionID int64) func() {
	key := fmt.Sprintf("%d:%d", userID, collectionID)
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (s *studyService) Start(ctx context.Context, userID, collectionID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting study session: user_id=%d, collection_id=%d", userID, collectionID)

	if _, err := s.collections.CanView(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	unlock := s.lock(userID, collectionID)
	defer unlock()

	// Starting is idempotent: an in-progress session is resumed as-is.
	active, err := s.sessions.FindActive(ctx, userID, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if active != nil {
		log.Debug("resuming active session: id=%d", active.ID)
		return active, nil
	}

	sample, err := s.flashcards.FirstByCollection(ctx, collectionID, study.CardsPerSession)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if len(sample) < study.CardsPerSession {
		return nil, errors.NewBadRequestError(
			fmt.Sprintf("collection needs at least %d flashcards to study, has %d", study.CardsPerSession, len(sample)))
	}

	cards := make([]models.StudyCardState, 0, len(sample))
	for _, f := range sample {
		cards = append(cards, study.NewCardState(f))
	}

	session := models.StudySession{
		UserID:       userID,
		CollectionID: collectionID,
		Cards:        cards,
		CurrentIndex: 0,
		Status:       models.PhaseIntroduction,
		StartTime:    time.Now(),
	}
	if _, err := s.sessions.Insert(ctx, session); err != nil {
		log.Error("failed to insert session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.sessions.FindActive(ctx, userID, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if created == nil {
		return nil, errors.NewInternalError(fmt.Errorf("session vanished after insert"))
	}
	log.Info("study session started: id=%d, cards=%d", created.ID, len(created.Cards))
	return created, nil
}

func (s *studyService) CheckAnswer(ctx context.Context, userID, collectionID int64, answer string) (*CheckResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("checking answer: user_id=%d, collection_id=%d", userID, collectionID)

	unlock := s.lock(userID, collectionID)
	defer unlock()

	session, err := s.sessions.FindActive(ctx, userID, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("active study session for collection", collectionID)
	}

	s.rngMu.Lock()
	result := study.Advance(s.rng, session, answer)
	s.rngMu.Unlock()

	if result.Mastered != nil {
		rec, err := s.progress.Get(ctx, userID, result.Mastered.FlashcardID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		progress := study.ScheduleMastery(rec, userID, result.Mastered.FlashcardID, time.Now())

		if err := s.sessions.UpdateWithProgress(ctx, *session, &progress); err != nil {
			log.Error("failed to persist session with progress: %v", err)
			return nil, errors.NewInternalError(err)
		}
		log.Info("card mastered: flashcard_id=%d, session_score=%d, remaining=%d",
			result.Mastered.FlashcardID, session.Score, len(session.Cards))
	} else {
		if err := s.sessions.Update(ctx, *session); err != nil {
			log.Error("failed to persist session: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	if session.Status == models.PhaseCompleted {
		log.Info("study session completed: id=%d, score=%d", session.ID, session.Score)
	}

	return &CheckResult{
		Correct:       result.Correct,
		CorrectAnswer: result.CorrectAnswer,
		Session:       session,
	}, nil
}

func (s *studyService) GetCurrent(ctx context.Context, userID, collectionID int64) (*models.StudySession, error) {
	if _, err := s.collections.CanView(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	session, err := s.sessions.FindActive(ctx, userID, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("active study session for collection", collectionID)
	}
	return session, nil
}
