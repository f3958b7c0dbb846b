package services

import (
	"context"
	"strings"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

// CollectionService handles collection CRUD and access control
type CollectionService interface {
	Create(ctx context.Context, userID int64, c models.Collection) (*models.Collection, error)
	Update(ctx context.Context, userID int64, c models.Collection) (*models.Collection, error)
	Delete(ctx context.Context, userID, collectionID int64) error
	Get(ctx context.Context, userID, collectionID int64) (*models.Collection, error)
	List(ctx context.Context, userID int64, filter models.CollectionFilter) ([]models.Collection, int, error)
	// CanView reports whether the user owns the collection, holds any share
	// grant on it, or the collection is public. View access is enough to study.
	CanView(ctx context.Context, userID, collectionID int64) (*models.Collection, error)
	// CanEdit reports whether the user owns the collection or holds an edit
	// grant. Edit access is required to mutate the collection's contents.
	CanEdit(ctx context.Context, userID, collectionID int64) (*models.Collection, error)
}

type collectionService struct {
	collections repository.CollectionRepository
	shares      repository.ShareRepository
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(collections repository.CollectionRepository, shares repository.ShareRepository) CollectionService {
	return &collectionService{collections: collections, shares: shares}
}

func (s *collectionService) Create(ctx context.Context, userID int64, c models.Collection) (*models.Collection, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating collection: owner_id=%d, name=%s", userID, c.Name)

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	c.OwnerID = userID

	id, err := s.collections.Insert(ctx, c)
	if err != nil {
		log.Error("failed to insert collection: %v", err)
		return nil, errors.NewInternalError(err)
	}

	created, err := s.collections.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("collection created: id=%d", id)
	return created, nil
}

func (s *collectionService) Update(ctx context.Context, userID int64, c models.Collection) (*models.Collection, error) {
	log := logger.FromContext(ctx)

	existing, err := s.CanEdit(ctx, userID, c.ID)
	if err != nil {
		return nil, err
	}

	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	c.OwnerID = existing.OwnerID

	if err := s.collections.Update(ctx, c); err != nil {
		log.Error("failed to update collection: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated, err := s.collections.Get(ctx, c.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return updated, nil
}

func (s *collectionService) Delete(ctx context.Context, userID, collectionID int64) error {
	log := logger.FromContext(ctx)

	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if c == nil {
		return errors.NewNotFoundError("collection", collectionID)
	}
	if c.OwnerID != userID {
		return errors.NewForbiddenError("only the owner can delete a collection")
	}

	if err := s.collections.Delete(ctx, collectionID); err != nil {
		log.Error("failed to delete collection: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("collection deleted: id=%d", collectionID)
	return nil
}

func (s *collectionService) Get(ctx context.Context, userID, collectionID int64) (*models.Collection, error) {
	return s.CanView(ctx, userID, collectionID)
}

func (s *collectionService) List(ctx context.Context, userID int64, filter models.CollectionFilter) ([]models.Collection, int, error) {
	log := logger.FromContext(ctx)

	// Listings are always scoped to what the user can see: collections they
	// own plus collections shared with them.
	filter.OwnerID = userID
	filter.SharedWith = userID

	collections, err := s.collections.List(ctx, filter)
	if err != nil {
		log.Error("failed to list collections: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.collections.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count collections: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return collections, total, nil
}

func (s *collectionService) CanView(ctx context.Context, userID, collectionID int64) (*models.Collection, error) {
	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("collection", collectionID)
	}
	if c.OwnerID == userID || c.Public {
		return c, nil
	}

	grant, err := s.shares.GetGrant(ctx, collectionID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if grant == nil {
		return nil, errors.NewForbiddenError("you do not have access to this collection")
	}
	return c, nil
}

func (s *collectionService) CanEdit(ctx context.Context, userID, collectionID int64) (*models.Collection, error) {
	c, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError("collection", collectionID)
	}
	if c.OwnerID == userID {
		return c, nil
	}

	grant, err := s.shares.GetGrant(ctx, collectionID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if grant == nil || grant.Permission != models.PermissionEdit {
		return nil, errors.NewForbiddenError("you do not have edit access to this collection")
	}
	return c, nil
}
