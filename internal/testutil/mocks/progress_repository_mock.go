package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/olenak/lingocards/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, flashcardID int64) (*models.ProgressRecord, error) {
	args := m.Called(ctx, userID, flashcardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) CountDue(ctx context.Context, userID int64, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}
