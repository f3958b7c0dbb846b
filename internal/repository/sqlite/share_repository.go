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

type shareRepository struct {
	db *sql.DB
}

// NewShareRepository creates a new ShareRepository implementation
func NewShareRepository(db *sql.DB) repository.ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) InsertGrant(ctx context.Context, grant models.SharedCollection) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("share_repo")
	log.Debug("inserting grant: collection_id=%d, user_id=%d, permission=%s",
		grant.CollectionID, grant.UserID, grant.Permission)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO shared_collections (collection_id, user_id, permission)
VALUES (?, ?, ?)
ON CONFLICT (collection_id, user_id) DO UPDATE SET permission = excluded.permission
`, grant.CollectionID, grant.UserID, grant.Permission)
	if err != nil {
		log.Error("failed to insert grant: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get grant id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *shareRepository) GetGrant(ctx context.Context, collectionID, userID int64) (*models.SharedCollection, error) {
	log := logger.FromContext(ctx).WithPrefix("share_repo")
	log.Debug("getting grant: collection_id=%d, user_id=%d", collectionID, userID)

	var g models.SharedCollection
	err := r.db.QueryRowContext(ctx, `
SELECT id, collection_id, user_id, permission, created_at
FROM shared_collections
WHERE collection_id = ? AND user_id = ?
`, collectionID, userID).Scan(&g.ID, &g.CollectionID, &g.UserID, &g.Permission, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get grant: %v", err)
		return nil, err
	}
	return &g, nil
}

func (r *shareRepository) ListGrants(ctx context.Context, collectionID int64) ([]models.SharedCollection, error) {
	log := logger.FromContext(ctx).WithPrefix("share_repo")
	log.Debug("listing grants: collection_id=%d", collectionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, collection_id, user_id, permission, created_at
FROM shared_collections
WHERE collection_id = ?
ORDER BY created_at ASC
`, collectionID)
	if err != nil {
		log.Error("failed to list grants: %v", err)
		return nil, err
	}
	defer rows.Close()

	var grants []models.SharedCollection
	for rows.Next() {
		var g models.SharedCollection
		if err := rows.Scan(&g.ID, &g.CollectionID, &g.UserID, &g.Permission, &g.CreatedAt); err != nil {
			log.Error("failed to scan grant row: %v", err)
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func (r *shareRepository) DeleteGrant(ctx context.Context, collectionID, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("share_repo")
	log.Debug("deleting grant: collection_id=%d, user_id=%d", collectionID, userID)

	_, err := r.db.ExecContext(ctx, `
DELETE FROM shared_collections WHERE collection_id = ? AND user_id = ?
`, collectionID, userID)
	if err != nil {
		log.Error("failed to delete grant: %v", err)
	}
	return err
}

func (r *shareRepository) InsertInvitation(ctx context.Context, inv models.ShareInvitation) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("share_repo")
	log.Debug("inserting invitation: collection_id=%d", inv.CollectionID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO share_invitations (collection_id, email, permission, token, expires_at)
VALUES (?, ?, ?, ?, ?)
`, inv.CollectionID, inv.Email, inv.Permission, inv.Token, inv.ExpiresAt)
	if err != nil {
		log.Error("failed to insert invitation: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get invitation id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *shareRepository) GetInvitation(ctx context.Context, id int64) (*models.ShareInvitation, error) {
	return r.getInvitation(ctx, `id = ?`, id)
}

func (r *shareRepository) GetInvitationByToken(ctx context.Context, token string) (*models.ShareInvitation, error) {
	return r.getInvitation(ctx, `token = ?`, token)
}

func (r *shareRepository) getInvitation(ctx context.Context, where string, arg any) (*models.ShareInvitation, error) {
	log := logger.FromContext(ctx).WithPrefix("share_repo")

	var inv models.ShareInvitation
	err := r.db.QueryRowContext(ctx, `
SELECT id, collection_id, email, permission, token, accepted_at, expires_at, created_at
FROM share_invitations
WHERE `+where, arg).Scan(
		&inv.ID, &inv.CollectionID, &inv.Email, &inv.Permission,
		&inv.Token, &inv.AcceptedAt, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get invitation: %v", err)
		return nil, err
	}
	return &inv, nil
}

func (r *shareRepository) MarkInvitationAccepted(ctx context.Context, id int64, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("share_repo")
	log.Debug("marking invitation accepted: id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE share_invitations SET accepted_at = ? WHERE id = ?
`, at, id)
	if err != nil {
		log.Error("failed to mark invitation accepted: %v", err)
	}
	return err
}

func (r *shareRepository) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("share_repo")

	res, err := r.db.ExecContext(ctx, `
DELETE FROM share_invitations WHERE accepted_at IS NULL AND expires_at < ?
`, now)
	if err != nil {
		log.Error("failed to delete expired invitations: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info("deleted %d expired invitations", n)
	}
	return n, nil
}
