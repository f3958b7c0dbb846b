package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
	"github.com/olenak/lingocards/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("inserting user: email=%s", u.Email)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, password_hash, name)
VALUES (?, ?, ?)
`, u.Email, u.PasswordHash, u.Name)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, name, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by email")

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, email, password_hash, name, created_at
FROM users
WHERE email = ?
`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found by email")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by email: %v", err)
		return nil, err
	}
	return &u, nil
}
