package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, flashcardID int64) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, flashcard_id=%d", userID, flashcardID)

	var rec models.ProgressRecord
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, flashcard_id, ease_factor, interval_days, next_review_at, study_count, last_studied_at, created_at
FROM progress_records
WHERE user_id = ? AND flashcard_id = ?
`, userID, flashcardID).Scan(
		&rec.ID, &rec.UserID, &rec.FlashcardID, &rec.EaseFactor, &rec.IntervalDays,
		&rec.NextReviewAt, &rec.StudyCount, &rec.LastStudiedAt, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *progressRepository) CountDue(ctx context.Context, userID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM progress_records WHERE user_id = ? AND next_review_at <= ?
`, userID, now).Scan(&count)
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return 0, err
	}
	return count, nil
}
