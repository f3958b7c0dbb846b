package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/olenak/lingocards/internal/repository"
	"github.com/olenak/lingocards/internal/repository/sqlite"
	"github.com/olenak/lingocards/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) setupUserAndFlashcards(n int) (int64, []int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "u@example.com", "hash")
	s.Require().NoError(err)
	userID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO collections (owner_id, name) VALUES (?, ?)`, userID, "Spanish")
	s.Require().NoError(err)
	collectionID, err := res.LastInsertId()
	s.Require().NoError(err)

	cardIDs := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO flashcards (collection_id, term, definition) VALUES (?, ?, ?)`, collectionID, "term", "def")
		s.Require().NoError(err)
		id, err := res.LastInsertId()
		s.Require().NoError(err)
		cardIDs = append(cardIDs, id)
	}
	return userID, cardIDs
}

func (s *ProgressRepositorySuite) insertProgress(userID, flashcardID int64, nextReviewAt time.Time) {
	_, err := s.db.ExecContext(context.Background(), `
INSERT INTO progress_records (user_id, flashcard_id, ease_factor, interval_days, next_review_at, study_count, last_studied_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, userID, flashcardID, 2.5, 1, nextReviewAt, 1, time.Now())
	s.Require().NoError(err)
}

func (s *ProgressRepositorySuite) TestGet_MissingReturnsNil() {
	rec, err := s.repo.Get(context.Background(), 1, 999)
	s.Require().NoError(err)
	s.Nil(rec)
}

func (s *ProgressRepositorySuite) TestGetRoundTrip() {
	ctx := context.Background()
	userID, cardIDs := s.setupUserAndFlashcards(1)
	s.insertProgress(userID, cardIDs[0], time.Now().Add(24*time.Hour))

	rec, err := s.repo.Get(ctx, userID, cardIDs[0])
	s.Require().NoError(err)
	s.Require().NotNil(rec)
	s.Equal(userID, rec.UserID)
	s.Equal(cardIDs[0], rec.FlashcardID)
	s.Equal(2.5, rec.EaseFactor)
	s.Equal(1, rec.StudyCount)
}

func (s *ProgressRepositorySuite) TestCountDue_OnlyCountsReachedReviewDates() {
	ctx := context.Background()
	userID, cardIDs := s.setupUserAndFlashcards(3)

	now := time.Now()
	s.insertProgress(userID, cardIDs[0], now.Add(-time.Hour))
	s.insertProgress(userID, cardIDs[1], now.Add(-time.Minute))
	s.insertProgress(userID, cardIDs[2], now.Add(48*time.Hour))

	due, err := s.repo.CountDue(ctx, userID, now)
	s.Require().NoError(err)
	s.Equal(2, due)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
