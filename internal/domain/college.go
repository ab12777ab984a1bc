package domain

import (
	"context"
	"time"
)

// College represents a campus that owns events and enrolls students.
// swagger:model College
type College struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCollege returns a new College. ID and Code are set by the repository on create.
func NewCollege(name, location string, createdAt, updatedAt time.Time) *College {
	return &College{
		Name:      name,
		Location:  location,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// CollegeRepository defines the interface for college storage
type CollegeRepository interface {
	Create(ctx context.Context, college *College) error
	GetByID(ctx context.Context, id string) (*College, error)
	List(ctx context.Context) ([]*College, error)
}

// CollegeService defines the business logic for the college directory.
type CollegeService interface {
	Create(ctx context.Context, name, location string) (*College, error)
	List(ctx context.Context) ([]*College, error)
}
