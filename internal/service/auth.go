package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
var ErrInvalidCredentials = errors.New("the provided credentials are incorrect")

// RegisterInput содержит данные регистрации нового пользователя.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Type     string
}

// newSessionToken генерирует bearer-токен сессии.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// hashSessionToken возвращает hex-представление SHA-256 от токена.
// В БД хранится только хеш.
func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register создаёт пользователя и возвращает его вместе с bearer-токеном сессии.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	legacy := make([]byte, 32)
	if _, err := rand.Read(legacy); err != nil {
		return nil, "", fmt.Errorf("read random: %w", err)
	}

	sessionToken, err := newSessionToken()
	if err != nil {
		return nil, "", err
	}

	userType := in.Type
	if userType == "" {
		userType = model.UserTypeUser
	}

	u, err := s.repo.CreateUser(ctx,
		in.Name, in.Email, passwordHash, userType,
		base64.StdEncoding.EncodeToString(legacy),
		hashSessionToken(sessionToken),
	)
	if err != nil {
		return nil, "", err
	}

	return u, sessionToken, nil
}

// Login проверяет учётные данные и выдаёт новый bearer-токен сессии.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	sessionToken, err := newSessionToken()
	if err != nil {
		return nil, "", err
	}

	if err := s.repo.CreateAuthToken(ctx, u.ID, hashSessionToken(sessionToken)); err != nil {
		return nil, "", err
	}

	return u, sessionToken, nil
}

// Logout отзывает предъявленный bearer-токен. Остальные сессии пользователя остаются активными.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteAuthToken(ctx, hashSessionToken(token))
}

// UserByToken возвращает владельца действующего bearer-токена.
func (s *Service) UserByToken(ctx context.Context, token string) (*model.User, error) {
	return s.repo.GetUserByTokenHash(ctx, hashSessionToken(token))
}
