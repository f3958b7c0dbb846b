package services

import (
	"context"
	"time"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

// StatsService aggregates learning statistics
type StatsService interface {
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
	CollectionStats(ctx context.Context, userID, collectionID int64) (*models.CollectionStats, error)
}

type statsService struct {
	stats       repository.StatsRepository
	progress    repository.ProgressRepository
	collections CollectionService
}

// NewStatsService creates a new StatsService
func NewStatsService(stats repository.StatsRepository, progress repository.ProgressRepository, collections CollectionService) StatsService {
	return &statsService{stats: stats, progress: progress, collections: collections}
}

func (s *statsService) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching user stats: user_id=%d", userID)

	stats, err := s.stats.UserStats(ctx, userID)
	if err != nil {
		log.Error("failed to aggregate user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	due, err := s.progress.CountDue(ctx, userID, time.Now())
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats.CardsDue = due
	return stats, nil
}

func (s *statsService) CollectionStats(ctx context.Context, userID, collectionID int64) (*models.CollectionStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching collection stats: collection_id=%d", collectionID)

	if _, err := s.collections.CanView(ctx, userID, collectionID); err != nil {
		return nil, err
	}

	stats, err := s.stats.CollectionStats(ctx, collectionID)
	if err != nil {
		log.Error("failed to aggregate collection stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
