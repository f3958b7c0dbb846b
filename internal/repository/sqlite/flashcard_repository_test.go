package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
	"github.com/olenak/lingocards/internal/repository/sqlite"
	"github.com/olenak/lingocards/internal/testutil"
)

type FlashcardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FlashcardRepository
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db)
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlashcardRepositorySuite) setupCollection() int64 {
	ctx := context.Background()
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "u@example.com", "hash")
	s.Require().NoError(err)
	userID, err := res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO collections (owner_id, name) VALUES (?, ?)`, userID, "Spanish")
	s.Require().NoError(err)
	collectionID, err := res.LastInsertId()
	s.Require().NoError(err)
	return collectionID
}

func (s *FlashcardRepositorySuite) TestInsertGetUpdate() {
	ctx := context.Background()
	collectionID := s.setupCollection()

	id, err := s.repo.Insert(ctx, models.Flashcard{
		CollectionID:  collectionID,
		Term:          "perro",
		Definition:    "dog",
		Pronunciation: "PEH-roh",
	})
	s.Require().NoError(err)

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Equal("perro", card.Term)
	s.Equal("PEH-roh", card.Pronunciation)

	card.Definition = "dog (animal)"
	s.Require().NoError(s.repo.Update(ctx, *card))

	updated, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal("dog (animal)", updated.Definition)
}

func (s *FlashcardRepositorySuite) TestGet_MissingReturnsNil() {
	card, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Nil(card)
}

func (s *FlashcardRepositorySuite) TestInsertBatchAndCount() {
	ctx := context.Background()
	collectionID := s.setupCollection()

	ids, err := s.repo.InsertBatch(ctx, []models.Flashcard{
		{CollectionID: collectionID, Term: "perro", Definition: "dog"},
		{CollectionID: collectionID, Term: "gato", Definition: "cat"},
		{CollectionID: collectionID, Term: "casa", Definition: "house"},
	})
	s.Require().NoError(err)
	s.Len(ids, 3)

	count, err := s.repo.CountByCollection(ctx, collectionID)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *FlashcardRepositorySuite) TestFirstByCollection_OldestFirstCapped() {
	ctx := context.Background()
	collectionID := s.setupCollection()

	terms := []string{"uno", "dos", "tres", "cuatro", "cinco", "seis"}
	for _, term := range terms {
		_, err := s.repo.Insert(ctx, models.Flashcard{CollectionID: collectionID, Term: term, Definition: "d"})
		s.Require().NoError(err)
	}

	sample, err := s.repo.FirstByCollection(ctx, collectionID, 4)
	s.Require().NoError(err)
	s.Require().Len(sample, 4)
	for i, term := range terms[:4] {
		s.Equal(term, sample[i].Term)
	}
}

func (s *FlashcardRepositorySuite) TestDelete() {
	ctx := context.Background()
	collectionID := s.setupCollection()

	id, err := s.repo.Insert(ctx, models.Flashcard{CollectionID: collectionID, Term: "perro", Definition: "dog"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, id))

	card, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Nil(card)
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
