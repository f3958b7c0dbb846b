package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/olenak/lingocards/internal/models"
)

// MockFlashcardRepository is a mock implementation of repository.FlashcardRepository
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Insert(ctx context.Context, card models.Flashcard) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) ([]int64, error) {
	args := m.Called(ctx, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockFlashcardRepository) Update(ctx context.Context, card models.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlashcardRepository) Get(ctx context.Context, id int64) (*models.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) ListByCollection(ctx context.Context, collectionID int64) ([]models.Flashcard, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) CountByCollection(ctx context.Context, collectionID int64) (int, error) {
	args := m.Called(ctx, collectionID)
	return args.Int(0), args.Error(1)
}

func (m *MockFlashcardRepository) FirstByCollection(ctx context.Context, collectionID int64, limit int) ([]models.Flashcard, error) {
	args := m.Called(ctx, collectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}
