package repository

import (
	"context"
	"time"

	"github.com/olenak/lingocards/internal/models"
)

// UserRepository handles user account data access
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (int64, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CollectionRepository handles collection data access
type CollectionRepository interface {
	Insert(ctx context.Context, c models.Collection) (int64, error)
	Update(ctx context.Context, c models.Collection) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Collection, error)
	List(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error)
	Count(ctx context.Context, filter models.CollectionFilter) (int, error)
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Insert(ctx context.Context, card models.Flashcard) (int64, error)
	InsertBatch(ctx context.Context, cards []models.Flashcard) ([]int64, error)
	Update(ctx context.Context, card models.Flashcard) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Flashcard, error)
	ListByCollection(ctx context.Context, collectionID int64) ([]models.Flashcard, error)
	CountByCollection(ctx context.Context, collectionID int64) (int, error)
	// FirstByCollection returns the collection's oldest cards, up to limit.
	// Sessions are seeded from this sample.
	FirstByCollection(ctx context.Context, collectionID int64, limit int) ([]models.Flashcard, error)
}

// ShareRepository handles share grants and email invitations
type ShareRepository interface {
	InsertGrant(ctx context.Context, grant models.SharedCollection) (int64, error)
	GetGrant(ctx context.Context, collectionID, userID int64) (*models.SharedCollection, error)
	ListGrants(ctx context.Context, collectionID int64) ([]models.SharedCollection, error)
	DeleteGrant(ctx context.Context, collectionID, userID int64) error
	InsertInvitation(ctx context.Context, inv models.ShareInvitation) (int64, error)
	GetInvitation(ctx context.Context, id int64) (*models.ShareInvitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*models.ShareInvitation, error)
	MarkInvitationAccepted(ctx context.Context, id int64, at time.Time) error
	DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepository handles study session persistence. The card set is
// serialized to a JSON blob on write and deserialized on every read.
type SessionRepository interface {
	FindActive(ctx context.Context, userID, collectionID int64) (*models.StudySession, error)
	Insert(ctx context.Context, session models.StudySession) (int64, error)
	Update(ctx context.Context, session models.StudySession) error
	// UpdateWithProgress persists the session and upserts the progress
	// record in a single transaction, so a mastery event cannot leave the
	// two stores inconsistent.
	UpdateWithProgress(ctx context.Context, session models.StudySession, progress *models.ProgressRecord) error
}

// ProgressRepository handles spaced-repetition progress records. Writes go
// through SessionRepository.UpdateWithProgress so a mastery event and its
// session update share one transaction.
type ProgressRepository interface {
	Get(ctx context.Context, userID, flashcardID int64) (*models.ProgressRecord, error)
	CountDue(ctx context.Context, userID int64, now time.Time) (int, error)
}

// StatsRepository handles learning statistics aggregation
type StatsRepository interface {
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
	CollectionStats(ctx context.Context, collectionID int64) (*models.CollectionStats, error)
}
