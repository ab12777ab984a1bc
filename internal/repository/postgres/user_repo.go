package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

const constraintUserEmail = "users_email_key"

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a UserRepository backed by postgres.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

const userColumns = `id, code, email, name, role, college_id, password_hash, password_salt, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.Code, &u.Email, &u.Name, &u.Role, &u.CollegeID,
		&u.PasswordHash, &u.PasswordSalt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Roles have no row to lock, so an advisory lock serializes code
	// assignment per role for the duration of this transaction.
	if _, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('users_code_' || $1::text))`, u.Role,
	); err != nil {
		return fmt.Errorf("acquire user code lock: %w", err)
	}

	var seq int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE role = $1
	`, u.Role).Scan(&seq)
	if err != nil {
		return fmt.Errorf("count users for code: %w", err)
	}
	u.Code = domain.FormatUserCode(u.Role, seq+1)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (code, email, name, role, college_id, password_hash, password_salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, u.Code, u.Email, u.Name, u.Role, u.CollegeID,
		u.PasswordHash, u.PasswordSalt, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err, constraintUserEmail) {
			err = domain.ErrDuplicateEmail
			return err
		}
		err = translateConflict(err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return fmt.Errorf("commit user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
