package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at FROM users WHERE id = ?
`, id).Scan(&u.ID, &u.Name, &u.CreatedAt)
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

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM users ORDER BY name`)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ErrDuplicateName reports a user name collision.
var ErrDuplicateName = errors.New("user name already exists")

func (r *userRepository) Create(ctx context.Context, name string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user: name=%s", name)

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (name) VALUES (?)`, name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, ErrDuplicateName
		}
		log.Error("failed to create user: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return nil, err
	}
	log.Debug("user created: id=%d", id)
	return r.Get(ctx, id)
}
