package services

import (
	"context"
	"io"
	"strings"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/importer"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

// FlashcardService handles flashcard CRUD and bulk import
type FlashcardService interface {
	Create(ctx context.Context, userID int64, card models.Flashcard) (*models.Flashcard, error)
	Update(ctx context.Context, userID int64, card models.Flashcard) (*models.Flashcard, error)
	Delete(ctx context.Context, userID, flashcardID int64) error
	ListByCollection(ctx context.Context, userID, collectionID int64) ([]models.Flashcard, error)
	// ImportCSV parses CSV input and bulk-inserts the drafts into the
	// collection. Returns the number of cards imported.
	ImportCSV(ctx context.Context, userID, collectionID int64, r io.Reader) (int, error)
}

type flashcardService struct {
	flashcards  repository.FlashcardRepository
	collections CollectionService
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(flashcards repository.FlashcardRepository, collections CollectionService) FlashcardService {
	return &flashcardService{flashcards: flashcards, collections: collections}
}

func (s *flashcardService) Create(ctx context.Context, userID int64, card models.Flashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: collection_id=%d", card.CollectionID)

	if _, err := s.collections.CanEdit(ctx, userID, card.CollectionID); err != nil {
		return nil, err
	}
	if err := validateCard(card); err != nil {
		return nil, err
	}

	id, err := s.flashcards.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.flashcards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return created, nil
}

func (s *flashcardService) Update(ctx context.Context, userID int64, card models.Flashcard) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	existing, err := s.flashcards.Get(ctx, card.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("flashcard", card.ID)
	}
	if _, err := s.collections.CanEdit(ctx, userID, existing.CollectionID); err != nil {
		return nil, err
	}
	if err := validateCard(card); err != nil {
		return nil, err
	}
	card.CollectionID = existing.CollectionID

	if err := s.flashcards.Update(ctx, card); err != nil {
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated, err := s.flashcards.Get(ctx, card.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return updated, nil
}

func (s *flashcardService) Delete(ctx context.Context, userID, flashcardID int64) error {
	log := logger.FromContext(ctx)

	existing, err := s.flashcards.Get(ctx, flashcardID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("flashcard", flashcardID)
	}
	if _, err := s.collections.CanEdit(ctx, userID, existing.CollectionID); err != nil {
		return err
	}

	if err := s.flashcards.Delete(ctx, flashcardID); err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *flashcardService) ListByCollection(ctx context.Context, userID, collectionID int64) ([]models.Flashcard, error) {
	if _, err := s.collections.CanView(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	cards, err := s.flashcards.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) ImportCSV(ctx context.Context, userID, collectionID int64, r io.Reader) (int, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing CSV: collection_id=%d", collectionID)

	if _, err := s.collections.CanEdit(ctx, userID, collectionID); err != nil {
		return 0, err
	}

	drafts, err := importer.ParseCSV(r)
	if err != nil {
		return 0, errors.NewBadRequestError(err.Error())
	}
	if len(drafts) == 0 {
		return 0, errors.NewBadRequestError("CSV contains no flashcards")
	}

	cards := make([]models.Flashcard, 0, len(drafts))
	for _, d := range drafts {
		cards = append(cards, models.Flashcard{
			CollectionID:  collectionID,
			Term:          d.Term,
			Definition:    d.Definition,
			Pronunciation: d.Pronunciation,
		})
	}

	ids, err := s.flashcards.InsertBatch(ctx, cards)
	if err != nil {
		log.Error("failed to import flashcards: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("imported %d flashcards into collection %d", len(ids), collectionID)
	return len(ids), nil
}

func validateCard(card models.Flashcard) error {
	if strings.TrimSpace(card.Term) == "" {
		return errors.NewValidationError("term", "is required")
	}
	if strings.TrimSpace(card.Definition) == "" {
		return errors.NewValidationError("definition", "is required")
	}
	return nil
}
