// Package users is the credential store behind signup and login.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/01moynul/suburbia-storefront/internal/models"
	"github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// mysqlErrDuplicateEntry is ER_DUP_ENTRY.
const mysqlErrDuplicateEntry = 1062

type Repository interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, u *models.User) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at)
         VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	u.ID = id
	return nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx,
		`SELECT id, name, email, password_hash, created_at
         FROM users WHERE email = ?`,
		email,
	)
}

func (r *repo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx,
		`SELECT id, name, email, password_hash, created_at
         FROM users WHERE id = ?`,
		id,
	)
}

func (r *repo) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
