package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type collegeService struct {
	collegeRepo domain.CollegeRepository
}

// NewCollegeService creates a CollegeService over the given repository.
func NewCollegeService(collegeRepo domain.CollegeRepository) domain.CollegeService {
	return &collegeService{collegeRepo: collegeRepo}
}

func (s *collegeService) Create(ctx context.Context, name, location string) (*domain.College, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: college name is required", domain.ErrInvalidState)
	}
	now := time.Now()
	college := domain.NewCollege(name, strings.TrimSpace(location), now, now)
	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, fmt.Errorf("create college: %w", err)
	}
	return college, nil
}

func (s *collegeService) List(ctx context.Context) ([]*domain.College, error) {
	colleges, err := s.collegeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}
