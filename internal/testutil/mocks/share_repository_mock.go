package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/olenak/lingocards/internal/models"
)

// MockShareRepository is a mock implementation of repository.ShareRepository
type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) InsertGrant(ctx context.Context, grant models.SharedCollection) (int64, error) {
	args := m.Called(ctx, grant)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShareRepository) GetGrant(ctx context.Context, collectionID, userID int64) (*models.SharedCollection, error) {
	args := m.Called(ctx, collectionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SharedCollection), args.Error(1)
}

func (m *MockShareRepository) ListGrants(ctx context.Context, collectionID int64) ([]models.SharedCollection, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SharedCollection), args.Error(1)
}

func (m *MockShareRepository) DeleteGrant(ctx context.Context, collectionID, userID int64) error {
	args := m.Called(ctx, collectionID, userID)
	return args.Error(0)
}

func (m *MockShareRepository) InsertInvitation(ctx context.Context, inv models.ShareInvitation) (int64, error) {
	args := m.Called(ctx, inv)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShareRepository) GetInvitation(ctx context.Context, id int64) (*models.ShareInvitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShareInvitation), args.Error(1)
}

func (m *MockShareRepository) GetInvitationByToken(ctx context.Context, token string) (*models.ShareInvitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShareInvitation), args.Error(1)
}

func (m *MockShareRepository) MarkInvitationAccepted(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockShareRepository) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
