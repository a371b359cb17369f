package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

const userColumns = `id, name, email, password_hash, type, token, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Type, &u.Token, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser создаёт нового пользователя и выдаёт ему первый токен сессии.
// Обе записи создаются в одной транзакции.
func (r *PostgresRepository) CreateUser(ctx context.Context, name, email string, passwordHash []byte, userType, legacyToken, sessionTokenHash string) (*model.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, type, token)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		name, email, passwordHash, userType, legacyToken,
	)

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO auth_tokens (user_id, token_hash) VALUES ($1, $2)`,
		u.ID, sessionTokenHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert auth token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// CreateAuthToken сохраняет хеш нового токена сессии пользователя.
func (r *PostgresRepository) CreateAuthToken(ctx context.Context, userID int64, tokenHash string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO auth_tokens (user_id, token_hash) VALUES ($1, $2)`,
		userID, tokenHash,
	)
	if err != nil {
		return fmt.Errorf("insert auth token: %w", err)
	}
	return nil
}

// DeleteAuthToken отзывает один токен сессии. Остальные сессии пользователя не затрагиваются.
func (r *PostgresRepository) DeleteAuthToken(ctx context.Context, tokenHash string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM auth_tokens WHERE token_hash = $1`,
		tokenHash,
	)
	if err != nil {
		return fmt.Errorf("delete auth token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrAuthTokenNotFound
	}
	return nil
}

// GetUserByTokenHash возвращает владельца токена сессии.
func (r *PostgresRepository) GetUserByTokenHash(ctx context.Context, tokenHash string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.password_hash, u.type, u.token, u.created_at, u.updated_at
		 FROM auth_tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.token_hash = $1`,
		tokenHash,
	)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuthTokenNotFound
		}
		return nil, fmt.Errorf("get user by token: %w", err)
	}

	return u, nil
}
