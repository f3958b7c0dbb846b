package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
	"github.com/olenak/lingocards/internal/repository/sqlite"
	"github.com/olenak/lingocards/internal/testutil"
)

type ShareRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ShareRepository
}

func (s *ShareRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewShareRepository(s.db)
}

func (s *ShareRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ShareRepositorySuite) setupUsersAndCollection() (ownerID, otherID, collectionID int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "owner@example.com", "hash")
	s.Require().NoError(err)
	ownerID, err = res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, "friend@example.com", "hash")
	s.Require().NoError(err)
	otherID, err = res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `INSERT INTO collections (owner_id, name) VALUES (?, ?)`, ownerID, "Spanish")
	s.Require().NoError(err)
	collectionID, err = res.LastInsertId()
	s.Require().NoError(err)
	return ownerID, otherID, collectionID
}

func (s *ShareRepositorySuite) TestGrantLifecycle() {
	ctx := context.Background()
	_, otherID, collectionID := s.setupUsersAndCollection()

	_, err := s.repo.InsertGrant(ctx, models.SharedCollection{
		CollectionID: collectionID,
		UserID:       otherID,
		Permission:   models.PermissionView,
	})
	s.Require().NoError(err)

	grant, err := s.repo.GetGrant(ctx, collectionID, otherID)
	s.Require().NoError(err)
	s.Require().NotNil(grant)
	s.Equal(models.PermissionView, grant.Permission)

	// Inserting again upgrades the permission instead of failing.
	_, err = s.repo.InsertGrant(ctx, models.SharedCollection{
		CollectionID: collectionID,
		UserID:       otherID,
		Permission:   models.PermissionEdit,
	})
	s.Require().NoError(err)

	grant, err = s.repo.GetGrant(ctx, collectionID, otherID)
	s.Require().NoError(err)
	s.Equal(models.PermissionEdit, grant.Permission)

	grants, err := s.repo.ListGrants(ctx, collectionID)
	s.Require().NoError(err)
	s.Len(grants, 1)

	s.Require().NoError(s.repo.DeleteGrant(ctx, collectionID, otherID))
	grant, err = s.repo.GetGrant(ctx, collectionID, otherID)
	s.Require().NoError(err)
	s.Nil(grant)
}

func (s *ShareRepositorySuite) TestInvitationByToken() {
	ctx := context.Background()
	_, _, collectionID := s.setupUsersAndCollection()

	token := uuid.NewString()
	id, err := s.repo.InsertInvitation(ctx, models.ShareInvitation{
		CollectionID: collectionID,
		Email:        "friend@example.com",
		Permission:   models.PermissionView,
		Token:        token,
		ExpiresAt:    time.Now().Add(7 * 24 * time.Hour),
	})
	s.Require().NoError(err)

	inv, err := s.repo.GetInvitationByToken(ctx, token)
	s.Require().NoError(err)
	s.Require().NotNil(inv)
	s.Equal(id, inv.ID)
	s.Nil(inv.AcceptedAt)

	s.Require().NoError(s.repo.MarkInvitationAccepted(ctx, id, time.Now()))
	inv, err = s.repo.GetInvitation(ctx, id)
	s.Require().NoError(err)
	s.NotNil(inv.AcceptedAt)
}

func (s *ShareRepositorySuite) TestDeleteExpiredInvitations() {
	ctx := context.Background()
	_, _, collectionID := s.setupUsersAndCollection()

	_, err := s.repo.InsertInvitation(ctx, models.ShareInvitation{
		CollectionID: collectionID,
		Email:        "stale@example.com",
		Permission:   models.PermissionView,
		Token:        uuid.NewString(),
		ExpiresAt:    time.Now().Add(-time.Hour),
	})
	s.Require().NoError(err)

	_, err = s.repo.InsertInvitation(ctx, models.ShareInvitation{
		CollectionID: collectionID,
		Email:        "fresh@example.com",
		Permission:   models.PermissionView,
		Token:        uuid.NewString(),
		ExpiresAt:    time.Now().Add(time.Hour),
	})
	s.Require().NoError(err)

	n, err := s.repo.DeleteExpiredInvitations(ctx, time.Now())
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func TestShareRepositorySuite(t *testing.T) {
	suite.Run(t, new(ShareRepositorySuite))
}
