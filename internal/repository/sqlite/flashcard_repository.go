package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: collection_id=%d, term=%s", c.CollectionID, c.Term)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (collection_id, term, definition, pronunciation, image_path, audio_path)
VALUES (?, ?, ?, ?, ?, ?)
`, c.CollectionID, c.Term, c.Definition, c.Pronunciation, c.ImagePath, c.AudioPath)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get flashcard id: %v", err)
		return 0, err
	}
	log.Debug("flashcard inserted: id=%d", id)
	return id, nil
}

func (r *flashcardRepository) InsertBatch(ctx context.Context, cards []models.Flashcard) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting %d flashcards in batch", len(cards))

	ids := make([]int64, 0, len(cards))
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO flashcards (collection_id, term, definition, pronunciation, image_path, audio_path)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range cards {
			res, err := stmt.ExecContext(ctx, c.CollectionID, c.Term, c.Definition, c.Pronunciation, c.ImagePath, c.AudioPath)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert flashcard batch: %v", err)
		return nil, err
	}
	log.Debug("inserted %d flashcards", len(ids))
	return ids, nil
}

func (r *flashcardRepository) Update(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE flashcards
SET term = ?, definition = ?, pronunciation = ?, image_path = ?, audio_path = ?
WHERE id = ?
`, c.Term, c.Definition, c.Pronunciation, c.ImagePath, c.AudioPath, c.ID)
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) Get(ctx context.Context, id int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%d", id)

	var c models.Flashcard
	err := r.db.QueryRowContext(ctx, `
SELECT id, collection_id, term, definition, pronunciation, image_path, audio_path, created_at
FROM flashcards
WHERE id = ?
`, id).Scan(&c.ID, &c.CollectionID, &c.Term, &c.Definition, &c.Pronunciation, &c.ImagePath, &c.AudioPath, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepository) ListByCollection(ctx context.Context, collectionID int64) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: collection_id=%d", collectionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, collection_id, term, definition, pronunciation, image_path, audio_path, created_at
FROM flashcards
WHERE collection_id = ?
ORDER BY created_at ASC, id ASC
`, collectionID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.CollectionID, &c.Term, &c.Definition, &c.Pronunciation, &c.ImagePath, &c.AudioPath, &c.CreatedAt); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards", len(cards))
	return cards, rows.Err()
}

func (r *flashcardRepository) CountByCollection(ctx context.Context, collectionID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards WHERE collection_id = ?`, collectionID).Scan(&count)
	if err != nil {
		log.Error("failed to count flashcards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *flashcardRepository) FirstByCollection(ctx context.Context, collectionID int64, limit int) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("sampling flashcards: collection_id=%d, limit=%d", collectionID, limit)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, collection_id, term, definition, pronunciation, image_path, audio_path, created_at
FROM flashcards
WHERE collection_id = ?
ORDER BY created_at ASC, id ASC
LIMIT ?
`, collectionID, limit)
	if err != nil {
		log.Error("failed to sample flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.CollectionID, &c.Term, &c.Definition, &c.Pronunciation, &c.ImagePath, &c.AudioPath, &c.CreatedAt); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("sampled %d flashcards", len(cards))
	return cards, rows.Err()
}
