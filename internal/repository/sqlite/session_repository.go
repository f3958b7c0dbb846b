package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) FindActive(ctx context.Context, userID, collectionID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("finding active session: user_id=%d, collection_id=%d", userID, collectionID)

	var (
		s        models.StudySession
		cardsRaw []byte
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, collection_id, cards, current_index, status, score, start_time, end_time, created_at, updated_at
FROM study_sessions
WHERE user_id = ? AND collection_id = ? AND status != ?
`, userID, collectionID, models.PhaseCompleted).Scan(
		&s.ID, &s.UserID, &s.CollectionID, &cardsRaw, &s.CurrentIndex,
		&s.Status, &s.Score, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no active session found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to find active session: %v", err)
		return nil, err
	}
	if err := json.Unmarshal(cardsRaw, &s.Cards); err != nil {
		log.Error("failed to decode session cards: %v", err)
		return nil, fmt.Errorf("decoding session cards: %w", err)
	}
	return &s, nil
}

func (r *sessionRepository) Insert(ctx context.Context, session models.StudySession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: user_id=%d, collection_id=%d, cards=%d",
		session.UserID, session.CollectionID, len(session.Cards))

	cardsRaw, err := json.Marshal(session.Cards)
	if err != nil {
		log.Error("failed to encode session cards: %v", err)
		return 0, fmt.Errorf("encoding session cards: %w", err)
	}

	// A stale completed session for the same pair is replaced so the
	// (user_id, collection_id) uniqueness constraint cannot fire.
	res, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (user_id, collection_id, cards, current_index, status, score, start_time, end_time)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, collection_id) DO UPDATE SET
    cards = excluded.cards,
    current_index = excluded.current_index,
    status = excluded.status,
    score = excluded.score,
    start_time = excluded.start_time,
    end_time = excluded.end_time,
    updated_at = CURRENT_TIMESTAMP
`, session.UserID, session.CollectionID, cardsRaw, session.CurrentIndex,
		session.Status, session.Score, session.StartTime, session.EndTime)
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get session id: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Update(ctx context.Context, session models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session: id=%d, status=%s, score=%d", session.ID, session.Status, session.Score)

	cardsRaw, err := json.Marshal(session.Cards)
	if err != nil {
		log.Error("failed to encode session cards: %v", err)
		return fmt.Errorf("encoding session cards: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
UPDATE study_sessions
SET cards = ?, current_index = ?, status = ?, score = ?, end_time = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, cardsRaw, session.CurrentIndex, session.Status, session.Score, session.EndTime, session.ID)
	if err != nil {
		log.Error("failed to update session: %v", err)
	}
	return err
}

func (r *sessionRepository) UpdateWithProgress(ctx context.Context, session models.StudySession, progress *models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("updating session with progress: session_id=%d", session.ID)

	cardsRaw, err := json.Marshal(session.Cards)
	if err != nil {
		log.Error("failed to encode session cards: %v", err)
		return fmt.Errorf("encoding session cards: %w", err)
	}

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
UPDATE study_sessions
SET cards = ?, current_index = ?, status = ?, score = ?, end_time = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, cardsRaw, session.CurrentIndex, session.Status, session.Score, session.EndTime, session.ID)
		if err != nil {
			return err
		}
		if progress == nil {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO progress_records (user_id, flashcard_id, ease_factor, interval_days, next_review_at, study_count, last_studied_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, flashcard_id) DO UPDATE SET
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    next_review_at = excluded.next_review_at,
    study_count = excluded.study_count,
    last_studied_at = excluded.last_studied_at
`, progress.UserID, progress.FlashcardID, progress.EaseFactor, progress.IntervalDays,
			progress.NextReviewAt, progress.StudyCount, progress.LastStudiedAt)
		return err
	})
}
