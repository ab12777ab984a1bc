package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

type collegeRepository struct {
	DB *sql.DB
}

// NewCollegeRepository creates a CollegeRepository backed by postgres.
func NewCollegeRepository(db *sql.DB) domain.CollegeRepository {
	return &collegeRepository{
		DB: db,
	}
}

func (r *collegeRepository) Create(ctx context.Context, c *domain.College) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('colleges_code'))`,
	); err != nil {
		return fmt.Errorf("acquire college code lock: %w", err)
	}

	var seq int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM colleges`).Scan(&seq)
	if err != nil {
		return fmt.Errorf("count colleges for code: %w", err)
	}
	c.Code = domain.FormatCollegeCode(seq + 1)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO colleges (code, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.Code, c.Name, c.Location, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		err = translateConflict(err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return fmt.Errorf("commit college: %w", err)
	}
	return nil
}

func (r *collegeRepository) GetByID(ctx context.Context, id string) (*domain.College, error) {
	query := `
		SELECT id, code, name, location, created_at, updated_at
		FROM colleges
		WHERE id = $1
	`
	c := &domain.College{}
	var location sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Code, &c.Name, &location, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if location.Valid {
		c.Location = location.String
	}
	return c, nil
}

func (r *collegeRepository) List(ctx context.Context) ([]*domain.College, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, code, name, location, created_at, updated_at
		FROM colleges
		ORDER BY code ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colleges := make([]*domain.College, 0)
	for rows.Next() {
		c := &domain.College{}
		var location sql.NullString
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &location, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if location.Valid {
			c.Location = location.String
		}
		colleges = append(colleges, c)
	}
	return colleges, rows.Err()
}
