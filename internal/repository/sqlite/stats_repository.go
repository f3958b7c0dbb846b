package sqlite

import (
	"context"
	"database/sql"

	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("aggregating user stats: user_id=%d", userID)

	var stats models.UserStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(score), 0)
FROM study_sessions
WHERE user_id = ?
`, userID).Scan(&stats.SessionsStarted, &stats.SessionsCompleted, &stats.TotalScore)
	if err != nil {
		log.Error("failed to aggregate session stats: %v", err)
		return nil, err
	}

	// CardsDue is filled in by the service from ProgressRepository.CountDue.
	err = r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(AVG(ease_factor), 0)
FROM progress_records
WHERE user_id = ?
`, userID).Scan(&stats.CardsMastered, &stats.AverageEaseFactor)
	if err != nil {
		log.Error("failed to aggregate progress stats: %v", err)
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) CollectionStats(ctx context.Context, collectionID int64) (*models.CollectionStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("aggregating collection stats: collection_id=%d", collectionID)

	stats := models.CollectionStats{CollectionID: collectionID}

	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM flashcards WHERE collection_id = ?
`, collectionID).Scan(&stats.FlashcardCount)
	if err != nil {
		log.Error("failed to count flashcards: %v", err)
		return nil, err
	}

	var lastStudied sql.NullTime
	err = r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
    COALESCE(AVG(score), 0),
    MAX(updated_at)
FROM study_sessions
WHERE collection_id = ?
`, collectionID).Scan(&stats.SessionsStarted, &stats.SessionsCompleted, &stats.AverageScore, &lastStudied)
	if err != nil {
		log.Error("failed to aggregate session stats: %v", err)
		return nil, err
	}
	if lastStudied.Valid {
		stats.LastStudiedAt = &lastStudied.Time
	}
	return &stats, nil
}
