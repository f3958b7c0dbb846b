package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

type collectionRepository struct {
	db *sql.DB
}

// NewCollectionRepository creates a new CollectionRepository implementation
func NewCollectionRepository(db *sql.DB) repository.CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Insert(ctx context.Context, c models.Collection) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("collection_repo")
	log.Debug("inserting collection: owner_id=%d, name=%s", c.OwnerID, c.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO collections (owner_id, name, description, source_lang, target_lang, public)
VALUES (?, ?, ?, ?, ?, ?)
`, c.OwnerID, c.Name, c.Description, c.SourceLang, c.TargetLang, c.Public)
	if err != nil {
		log.Error("failed to insert collection: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get collection id: %v", err)
		return 0, err
	}
	log.Debug("collection inserted: id=%d", id)
	return id, nil
}

func (r *collectionRepository) Update(ctx context.Context, c models.Collection) error {
	log := logger.FromContext(ctx).WithPrefix("collection_repo")
	log.Debug("updating collection: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE collections
SET name = ?, description = ?, source_lang = ?, target_lang = ?, public = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, c.Name, c.Description, c.SourceLang, c.TargetLang, c.Public, c.ID)
	if err != nil {
		log.Error("failed to update collection: %v", err)
	}
	return err
}

func (r *collectionRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("collection_repo")
	log.Debug("deleting collection: id=%d", id)

	// Foreign keys cascade to flashcards, shares, sessions and progress.
	_, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete collection: %v", err)
	}
	return err
}

func (r *collectionRepository) Get(ctx context.Context, id int64) (*models.Collection, error) {
	log := logger.FromContext(ctx).WithPrefix("collection_repo")
	log.Debug("getting collection: id=%d", id)

	var c models.Collection
	err := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, name, description, source_lang, target_lang, public, created_at, updated_at
FROM collections
WHERE id = ?
`, id).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.SourceLang, &c.TargetLang, &c.Public, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("collection not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get collection: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) List(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error) {
	log := logger.FromContext(ctx).WithPrefix("collection_repo")
	log.Debug("listing collections: owner_id=%d, shared_with=%d, search=%s",
		filter.OwnerID, filter.SharedWith, filter.Search)

	query := r.buildListQuery(filter, false)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list collections: %v", err)
		return nil, err
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.SourceLang, &c.TargetLang, &c.Public, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("failed to scan collection row: %v", err)
			return nil, err
		}
		collections = append(collections, c)
	}
	log.Debug("found %d collections", len(collections))
	return collections, rows.Err()
}

func (r *collectionRepository) Count(ctx context.Context, filter models.CollectionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("collection_repo")

	query := r.buildListQuery(filter, true)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count collections: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *collectionRepository) buildListQuery(filter models.CollectionFilter, count bool) squirrel.SelectBuilder {
	var query squirrel.SelectBuilder
	if count {
		query = sqlBuilder.Select("COUNT(*)").From("collections c")
	} else {
		query = sqlBuilder.Select(
			"c.id", "c.owner_id", "c.name", "c.description", "c.source_lang",
			"c.target_lang", "c.public", "c.created_at", "c.updated_at",
		).From("collections c")
	}

	// Dynamic WHERE clauses
	if filter.OwnerID != 0 && filter.SharedWith != 0 {
		// Collections the user owns or has a share grant on.
		query = query.Where(squirrel.Or{
			squirrel.Eq{"c.owner_id": filter.OwnerID},
			squirrel.Expr("c.id IN (SELECT collection_id FROM shared_collections WHERE user_id = ?)", filter.SharedWith),
		})
	} else if filter.OwnerID != 0 {
		query = query.Where(squirrel.Eq{"c.owner_id": filter.OwnerID})
	} else if filter.SharedWith != 0 {
		query = query.Where(squirrel.Expr("c.id IN (SELECT collection_id FROM shared_collections WHERE user_id = ?)", filter.SharedWith))
	}
	if filter.SourceLang != "" {
		query = query.Where(squirrel.Eq{"c.source_lang": filter.SourceLang})
	}
	if filter.TargetLang != "" {
		query = query.Where(squirrel.Eq{"c.target_lang": filter.TargetLang})
	}
	if filter.Search != "" {
		query = query.Where(squirrel.Like{"c.name": "%" + filter.Search + "%"})
	}

	if count {
		return query
	}

	query = query.OrderBy("c.updated_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	return query.Limit(uint64(limit)).Offset(uint64(offset))
}
