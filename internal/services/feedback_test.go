package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusevents/internal/domain"
)

func TestFeedbackService_Create(t *testing.T) {
	ctx := context.Background()
	events := map[string]*domain.Event{"ev-1": activeTestEvent("ev-1", 10, 0)}
	attended := func() *mockAttendanceRepository {
		return &mockAttendanceRepository{records: map[string]*domain.Attendance{
			"att-1": {ID: "att-1", EventID: "ev-1", StudentID: "a",
				CheckInTime: time.Now().Add(-time.Hour)},
		}}
	}

	t.Run("success", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackRepository{}, attended(),
			&mockEventRepository{events: events})

		f, err := svc.Create(ctx, "ev-1", "a", &domain.Feedback{OverallRating: 4, WouldRecommend: true})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if f.AttendanceID != "att-1" {
			t.Fatalf("attendance id = %s, want att-1", f.AttendanceID)
		}
		if f.SubmittedAt.IsZero() {
			t.Fatal("expected submitted_at to be stamped")
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackRepository{}, attended(),
			&mockEventRepository{events: events})
		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Create(ctx, "ev-1", "a", &domain.Feedback{OverallRating: rating})
			if !errors.Is(err, domain.ErrInvalidState) {
				t.Fatalf("rating %d: err = %v, want ErrInvalidState", rating, err)
			}
		}
	})

	t.Run("no attendance means not registered", func(t *testing.T) {
		svc := NewFeedbackService(&mockFeedbackRepository{}, &mockAttendanceRepository{},
			&mockEventRepository{events: events})
		_, err := svc.Create(ctx, "ev-1", "a", &domain.Feedback{OverallRating: 3})
		if !errors.Is(err, domain.ErrNotRegistered) {
			t.Fatalf("err = %v, want ErrNotRegistered", err)
		}
	})

	t.Run("second feedback for the same attendance rejected", func(t *testing.T) {
		fbRepo := &mockFeedbackRepository{}
		svc := NewFeedbackService(fbRepo, attended(), &mockEventRepository{events: events})
		if _, err := svc.Create(ctx, "ev-1", "a", &domain.Feedback{OverallRating: 5}); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := svc.Create(ctx, "ev-1", "a", &domain.Feedback{OverallRating: 2})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("err = %v, want ErrInvalidState", err)
		}
	})
}

func TestFeedbackService_ListByEvent(t *testing.T) {
	ctx := context.Background()
	events := map[string]*domain.Event{"ev-1": activeTestEvent("ev-1", 10, 0)}
	fbRepo := &mockFeedbackRepository{items: map[string]*domain.Feedback{
		"f1": {ID: "f1", EventID: "ev-1", OverallRating: 5},
		"f2": {ID: "f2", EventID: "ev-1", OverallRating: 3},
		"f3": {ID: "f3", EventID: "ev-2", OverallRating: 1},
	}}
	svc := NewFeedbackService(fbRepo, &mockAttendanceRepository{}, &mockEventRepository{events: events})

	items, total, summary, err := svc.ListByEvent(ctx, "ev-1", domain.PaginationParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("got %d items (total %d), want 2", len(items), total)
	}
	if summary.Count != 2 || summary.AverageRating != 4 {
		t.Fatalf("summary = %+v, want count 2 avg 4", summary)
	}

	_, _, _, err = svc.ListByEvent(ctx, "ev-missing", domain.PaginationParams{Page: 1, PageSize: 20})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
