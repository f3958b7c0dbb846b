package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/olenak/lingocards/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindActive(ctx context.Context, userID, collectionID int64) (*models.StudySession, error) {
	args := m.Called(ctx, userID, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockSessionRepository) Insert(ctx context.Context, session models.StudySession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, session models.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) UpdateWithProgress(ctx context.Context, session models.StudySession, progress *models.ProgressRecord) error {
	args := m.Called(ctx, session, progress)
	return args.Error(0)
}
