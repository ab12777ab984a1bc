package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusevents/internal/domain"
)

type mockHasher struct {
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }
func (m *mockHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}
func (m *mockHasher) Compare(hash, salt, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hash:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockIssuer struct {
	err error
}

func (m *mockIssuer) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + userID, nil
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	colleges := map[string]*domain.College{"col-1": {ID: "col-1", Name: "Test College"}}

	t.Run("success lowercases email and defaults role", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{users: map[string]*domain.User{}},
			&mockCollegeRepository{colleges: colleges}, &mockHasher{}, &mockIssuer{}, time.Hour)

		user, err := svc.SignUp(ctx, "  Alice@Campus.TEST ", "Alice", "password123", domain.Role("bogus"), "col-1")
		if err != nil {
			t.Fatalf("sign up: %v", err)
		}
		if user.Email != "alice@campus.test" {
			t.Fatalf("email = %q", user.Email)
		}
		if user.Role != domain.RoleStudent {
			t.Fatalf("role = %s, want student", user.Role)
		}
		if user.PasswordHash == "" || user.PasswordSalt == "" {
			t.Fatal("expected credentials to be derived")
		}
	})

	t.Run("unknown college", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{users: map[string]*domain.User{}},
			&mockCollegeRepository{colleges: colleges}, &mockHasher{}, &mockIssuer{}, time.Hour)
		_, err := svc.SignUp(ctx, "a@b.test", "A", "password123", domain.RoleStudent, "col-missing")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{err: domain.ErrDuplicateEmail},
			&mockCollegeRepository{colleges: colleges}, &mockHasher{}, &mockIssuer{}, time.Hour)
		_, err := svc.SignUp(ctx, "a@b.test", "A", "password123", domain.RoleStudent, "col-1")
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("err = %v, want ErrDuplicateEmail", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	users := map[string]*domain.User{
		"u1": {ID: "u1", Email: "alice@campus.test", Role: domain.RoleStudent,
			PasswordHash: "hash:salt:password123", PasswordSalt: "salt"},
	}

	t.Run("success", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{users: users}, &mockCollegeRepository{},
			&mockHasher{}, &mockIssuer{}, time.Hour)
		token, user, err := svc.Login(ctx, "ALICE@campus.test", "password123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token != "token-u1" || user.ID != "u1" {
			t.Fatalf("token = %q user = %+v", token, user)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{users: users}, &mockCollegeRepository{},
			&mockHasher{}, &mockIssuer{}, time.Hour)
		_, _, err := svc.Login(ctx, "nobody@campus.test", "password123")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{users: users}, &mockCollegeRepository{},
			&mockHasher{}, &mockIssuer{}, time.Hour)
		_, _, err := svc.Login(ctx, "alice@campus.test", "wrong")
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})
}
