// Package middleware содержит HTTP middleware сервиса учёта посылок.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/repository"
)

type contextKey string

const (
	userKey  contextKey = "authUser"
	tokenKey contextKey = "authToken"
)

// UserAuthenticator проверяет bearer-токен и возвращает его владельца.
type UserAuthenticator interface {
	UserByToken(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware выполняет проверку bearer-токена из заголовка Authorization.
type AuthMiddleware struct {
	auth   UserAuthenticator
	logger *zap.Logger
}

// NewAuthMiddleware создаёт новый экземпляр AuthMiddleware.
func NewAuthMiddleware(auth UserAuthenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logger,
	}
}

// Middleware извлекает bearer-токен, проверяет его и кладёт пользователя в контекст запроса.
func (a *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		user, err := a.auth.UserByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, repository.ErrAuthTokenNotFound) {
				writeUnauthorized(w)
				return
			}
			a.logger.Error("auth token lookup error", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"internal server error"}`))
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":"error","message":"unauthenticated"}`))
}

// GetUserFromContext извлекает аутентифицированного пользователя из контекста запроса.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}

// GetTokenFromContext извлекает предъявленный bearer-токен из контекста запроса.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok
}
