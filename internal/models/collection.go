package models

import "time"

// SharePermission is the level of access a share grant gives a non-owner.
type SharePermission string

const (
	PermissionView SharePermission = "view"
	PermissionEdit SharePermission = "edit"
)

func (p SharePermission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

type Collection struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SourceLang  string    `json:"source_lang"`
	TargetLang  string    `json:"target_lang"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionFilter narrows collection listings.
type CollectionFilter struct {
	OwnerID    int64
	SharedWith int64 // include collections shared with this user
	SourceLang string
	TargetLang string
	Search     string // matches name substring
	Limit      int
	Offset     int
}

type SharedCollection struct {
	ID           int64           `json:"id"`
	CollectionID int64           `json:"collection_id"`
	UserID       int64           `json:"user_id"`
	Permission   SharePermission `json:"permission"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ShareInvitation struct {
	ID           int64           `json:"id"`
	CollectionID int64           `json:"collection_id"`
	Email        string          `json:"email"`
	Permission   SharePermission `json:"permission"`
	Token        string          `json:"token"`
	AcceptedAt   *time.Time      `json:"accepted_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
	CreatedAt    time.Time       `json:"created_at"`
}
