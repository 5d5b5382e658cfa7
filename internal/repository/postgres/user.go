package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chiefbiiko/lauth/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.UserPrivate, error) {
	query := `SELECT id, role, email, attrs, password_digest, salt, created_at
			  FROM users WHERE email = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.UserPrivate, error) {
	query := `SELECT id, role, email, attrs, password_digest, salt, created_at
			  FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// Create inserts the user record. The unique constraint on email makes the
// insert a single atomic claim; losing a registration race surfaces as
// model.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user model.UserPrivate) error {
	query := `INSERT INTO users (id, role, email, attrs, password_digest, salt, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Role, user.Email, user.Attrs,
		user.PasswordDigest, user.Salt, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *UserRepository) scanUser(row pgx.Row) (model.UserPrivate, error) {
	var user model.UserPrivate
	err := row.Scan(
		&user.ID, &user.Role, &user.Email, &user.Attrs,
		&user.PasswordDigest, &user.Salt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserPrivate{}, model.ErrNotFound
		}
		return model.UserPrivate{}, fmt.Errorf("failed to read user: %w", err)
	}

	return user, nil
}
