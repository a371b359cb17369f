package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/repository"
)

type stubAuthRepo struct {
	Repository

	users  map[string]*model.User
	tokens map[string]int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		users:  map[string]*model.User{},
		tokens: map[string]int64{},
	}
}

func (s *stubAuthRepo) CreateUser(ctx context.Context, name, email string, passwordHash []byte, userType, legacyToken, sessionTokenHash string) (*model.User, error) {
	if _, ok := s.users[email]; ok {
		return nil, repository.ErrEmailExists
	}
	u := &model.User{
		ID:           int64(len(s.users) + 1),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         userType,
		Token:        legacyToken,
	}
	s.users[email] = u
	s.tokens[sessionTokenHash] = u.ID
	return u, nil
}

func (s *stubAuthRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *stubAuthRepo) CreateAuthToken(ctx context.Context, userID int64, tokenHash string) error {
	s.tokens[tokenHash] = userID
	return nil
}

func (s *stubAuthRepo) DeleteAuthToken(ctx context.Context, tokenHash string) error {
	if _, ok := s.tokens[tokenHash]; !ok {
		return repository.ErrAuthTokenNotFound
	}
	delete(s.tokens, tokenHash)
	return nil
}

func (s *stubAuthRepo) GetUserByTokenHash(ctx context.Context, tokenHash string) (*model.User, error) {
	id, ok := s.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrAuthTokenNotFound
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrAuthTokenNotFound
}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewService(repo)

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Anna",
		Email:    "anna@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty session token")
	}
	if u.Type != model.UserTypeUser {
		t.Fatalf("type = %q, want %q", u.Type, model.UserTypeUser)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	got, err := svc.UserByToken(context.Background(), token)
	if err != nil {
		t.Fatalf("user by token: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("user id = %d, want %d", got.ID, u.ID)
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewService(repo)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Anna",
		Email:    "anna@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, _, errWrongPass := svc.Login(context.Background(), "anna@example.com", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Fatalf("error messages differ: %q vs %q", errUnknown, errWrongPass)
	}
}

func TestLogout_RevokesOnlyPresentedToken(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewService(repo)

	_, first, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Anna",
		Email:    "anna@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, second, err := svc.Login(context.Background(), "anna@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), first); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.UserByToken(context.Background(), first); !errors.Is(err, repository.ErrAuthTokenNotFound) {
		t.Fatalf("revoked token still valid: err = %v", err)
	}
	if _, err := svc.UserByToken(context.Background(), second); err != nil {
		t.Fatalf("second session revoked unexpectedly: %v", err)
	}
}
