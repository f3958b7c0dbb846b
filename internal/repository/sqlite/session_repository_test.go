package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
	"github.com/olenak/lingocards/internal/repository/sqlite"
	"github.com/olenak/lingocards/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	repo     repository.SessionRepository
	progress repository.ProgressRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
	s.progress = sqlite.NewProgressRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) setupUserAndCollection() (int64, int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "u@example.com", "hash")
	s.Require().NoError(err)
	userID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO collections (owner_id, name) VALUES (?, ?)`, userID, "Spanish")
	s.Require().NoError(err)
	collectionID, err := res.LastInsertId()
	s.Require().NoError(err)

	return userID, collectionID
}

func (s *SessionRepositorySuite) insertFlashcard(collectionID int64, term string) int64 {
	res, err := s.db.ExecContext(context.Background(),
		`INSERT INTO flashcards (collection_id, term, definition) VALUES (?, ?, ?)`, collectionID, term, "def")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *SessionRepositorySuite) TestInsertAndFindActive_CardsRoundTrip() {
	ctx := context.Background()
	userID, collectionID := s.setupUserAndCollection()

	session := models.StudySession{
		UserID:       userID,
		CollectionID: collectionID,
		Cards: []models.StudyCardState{
			{FlashcardID: 1, Term: "perro", Definition: "dog", Score: 30},
			{FlashcardID: 2, Term: "gato", Definition: "cat", Intro: true, Quiz: true, Score: 25},
		},
		CurrentIndex: 1,
		Status:       models.PhaseTyping,
		Score:        30,
		StartTime:    time.Now(),
	}

	_, err := s.repo.Insert(ctx, session)
	s.Require().NoError(err)

	found, err := s.repo.FindActive(ctx, userID, collectionID)
	s.Require().NoError(err)
	s.Require().NotNil(found)

	s.Len(found.Cards, 2)
	s.Equal("perro", found.Cards[0].Term)
	s.Equal(30, found.Cards[0].Score)
	s.True(found.Cards[1].Intro)
	s.True(found.Cards[1].Quiz)
	s.False(found.Cards[1].Typing)
	s.Equal(1, found.CurrentIndex)
	s.Equal(models.PhaseTyping, found.Status)
	s.Equal(30, found.Score)
	s.Nil(found.EndTime)
}

func (s *SessionRepositorySuite) TestFindActive_ExcludesCompleted() {
	ctx := context.Background()
	userID, collectionID := s.setupUserAndCollection()

	now := time.Now()
	session := models.StudySession{
		UserID:       userID,
		CollectionID: collectionID,
		Cards:        []models.StudyCardState{},
		CurrentIndex: -1,
		Status:       models.PhaseCompleted,
		Score:        120,
		StartTime:    now.Add(-time.Hour),
		EndTime:      &now,
	}
	_, err := s.repo.Insert(ctx, session)
	s.Require().NoError(err)

	found, err := s.repo.FindActive(ctx, userID, collectionID)
	s.Require().NoError(err)
	s.Nil(found, "completed sessions are not active")
}

func (s *SessionRepositorySuite) TestInsert_ReplacesCompletedSessionForSamePair() {
	ctx := context.Background()
	userID, collectionID := s.setupUserAndCollection()

	now := time.Now()
	completed := models.StudySession{
		UserID: userID, CollectionID: collectionID,
		Cards: []models.StudyCardState{}, CurrentIndex: -1,
		Status: models.PhaseCompleted, Score: 120,
		StartTime: now.Add(-time.Hour), EndTime: &now,
	}
	_, err := s.repo.Insert(ctx, completed)
	s.Require().NoError(err)

	fresh := models.StudySession{
		UserID: userID, CollectionID: collectionID,
		Cards:        []models.StudyCardState{{FlashcardID: 1, Term: "perro", Score: 30}},
		CurrentIndex: 0,
		Status:       models.PhaseIntroduction,
		StartTime:    now,
	}
	_, err = s.repo.Insert(ctx, fresh)
	s.Require().NoError(err, "re-starting on the same pair must not violate uniqueness")

	found, err := s.repo.FindActive(ctx, userID, collectionID)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(models.PhaseIntroduction, found.Status)
	s.Equal(0, found.Score)
	s.Nil(found.EndTime)
}

func (s *SessionRepositorySuite) TestUpdateWithProgress_WritesBothAtomically() {
	ctx := context.Background()
	userID, collectionID := s.setupUserAndCollection()
	cardID := s.insertFlashcard(collectionID, "perro")

	session := models.StudySession{
		UserID: userID, CollectionID: collectionID,
		Cards:        []models.StudyCardState{{FlashcardID: cardID, Term: "perro", Score: 30}},
		CurrentIndex: 0,
		Status:       models.PhaseIntroduction,
		StartTime:    time.Now(),
	}
	_, err := s.repo.Insert(ctx, session)
	s.Require().NoError(err)

	active, err := s.repo.FindActive(ctx, userID, collectionID)
	s.Require().NoError(err)

	now := time.Now()
	active.Cards = nil
	active.CurrentIndex = -1
	active.Status = models.PhaseCompleted
	active.Score = 30
	active.EndTime = &now

	progress := models.ProgressRecord{
		UserID:        userID,
		FlashcardID:   cardID,
		EaseFactor:    2.5,
		IntervalDays:  1,
		NextReviewAt:  now.Add(24 * time.Hour),
		StudyCount:    1,
		LastStudiedAt: now,
	}
	err = s.repo.UpdateWithProgress(ctx, *active, &progress)
	s.Require().NoError(err)

	found, err := s.repo.FindActive(ctx, userID, collectionID)
	s.Require().NoError(err)
	s.Nil(found, "session is now completed")

	rec, err := s.progress.Get(ctx, userID, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(rec)
	s.Equal(1, rec.StudyCount)
	s.Equal(2.5, rec.EaseFactor)
}

func (s *SessionRepositorySuite) TestUpdateWithProgress_UpsertsExistingRecord() {
	ctx := context.Background()
	userID, collectionID := s.setupUserAndCollection()
	cardID := s.insertFlashcard(collectionID, "perro")

	session := models.StudySession{
		UserID: userID, CollectionID: collectionID,
		Cards:        []models.StudyCardState{{FlashcardID: cardID, Term: "perro", Score: 30}},
		CurrentIndex: 0,
		Status:       models.PhaseIntroduction,
		StartTime:    time.Now(),
	}
	_, err := s.repo.Insert(ctx, session)
	s.Require().NoError(err)
	active, err := s.repo.FindActive(ctx, userID, collectionID)
	s.Require().NoError(err)

	now := time.Now()
	first := models.ProgressRecord{
		UserID: userID, FlashcardID: cardID,
		EaseFactor: 2.5, IntervalDays: 1,
		NextReviewAt: now.Add(24 * time.Hour), StudyCount: 1, LastStudiedAt: now,
	}
	s.Require().NoError(s.repo.UpdateWithProgress(ctx, *active, &first))

	second := first
	second.EaseFactor = 2.6
	second.IntervalDays = 2
	second.StudyCount = 2
	s.Require().NoError(s.repo.UpdateWithProgress(ctx, *active, &second))

	rec, err := s.progress.Get(ctx, userID, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(rec)
	s.Equal(2, rec.StudyCount)
	s.Equal(2, rec.IntervalDays)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
