package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	mathrand "math/rand"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/repository"
)

const (
	// clientTokenBytes даёт 20 символов в base64url без паддинга.
	clientTokenBytes = 15

	// baseClientID выдаётся первому клиенту пустой базы.
	baseClientID = 300

	// maxClientIDGap ограничивает случайный шаг между идентификаторами.
	// Шаг скрывает реальное количество клиентов от внешних держателей токенов.
	maxClientIDGap = 9

	// allocationAttempts ограничивает количество попыток занять свободные идентификатор и токен.
	allocationAttempts = 5

	allocationRetryDelay = 10 * time.Millisecond
)

// ErrAllocationExhausted возвращается, если за отведённые попытки не удалось
// занять свободные идентификатор и токен клиента.
var ErrAllocationExhausted = errors.New("unable to allocate client id and token")

// newClientToken генерирует случайный токен клиента из 20 URL-безопасных символов.
func newClientToken() (string, error) {
	buf := make([]byte, clientTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// nextClientID выбирает идентификатор для нового клиента: 300 для пустой базы,
// иначе последний занятый плюс случайный шаг из [1, 9].
func (s *Service) nextClientID(ctx context.Context) (int64, error) {
	lastID, ok, err := s.repo.MaxClientID(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return baseClientID, nil
	}
	return lastID + 1 + mathrand.Int63n(maxClientIDGap), nil
}

func allocationBackoff() retry.Backoff {
	return retry.WithMaxRetries(allocationAttempts-1, retry.NewConstant(allocationRetryDelay))
}

func isAllocationConflict(err error) bool {
	return errors.Is(err, repository.ErrClientIDTaken) || errors.Is(err, repository.ErrClientTokenTaken)
}

// CreateClient создаёт клиента, выделяя ему уникальные идентификатор и токен.
// Уникальность гарантируют ограничения БД; конфликт вставки повторяется
// с новыми значениями, после пяти неудач возвращается ErrAllocationExhausted.
func (s *Service) CreateClient(ctx context.Context, in model.ClientInput) (*model.Client, error) {
	var created *model.Client

	err := retry.Do(ctx, allocationBackoff(), func(ctx context.Context) error {
		clientID, err := s.nextClientID(ctx)
		if err != nil {
			return err
		}

		token, err := newClientToken()
		if err != nil {
			return err
		}

		c, err := s.repo.CreateClient(ctx, clientID, in, token)
		if err != nil {
			if isAllocationConflict(err) {
				return retry.RetryableError(err)
			}
			return err
		}

		created = c
		return nil
	})
	if err != nil {
		if isAllocationConflict(err) {
			return nil, ErrAllocationExhausted
		}
		return nil, err
	}

	return created, nil
}

// RegenerateClientToken заменяет токен клиента на новый уникальный.
func (s *Service) RegenerateClientToken(ctx context.Context, clientID int64) (*model.Client, error) {
	var updated *model.Client

	err := retry.Do(ctx, allocationBackoff(), func(ctx context.Context) error {
		token, err := newClientToken()
		if err != nil {
			return err
		}

		c, err := s.repo.UpdateClientToken(ctx, clientID, token)
		if err != nil {
			if errors.Is(err, repository.ErrClientTokenTaken) {
				return retry.RetryableError(err)
			}
			return err
		}

		updated = c
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrClientTokenTaken) {
			return nil, ErrAllocationExhausted
		}
		return nil, err
	}

	return updated, nil
}
