package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

const clientColumns = `client_id, name, contact, country_code, address, url, webhook, token`

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ClientID, &c.Name, &c.Contact, &c.CountryCode, &c.Address, &c.URL, &c.Webhook, &c.Token)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients возвращает страницу клиентов и их общее количество.
func (r *PostgresRepository) ListClients(ctx context.Context, page model.Page) ([]model.Client, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM client`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+clientColumns+`
		 FROM client
		 ORDER BY client_id
		 LIMIT $1 OFFSET $2`,
		page.PerPage, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return clients, total, nil
}

// GetClient возвращает клиента по его идентификатору.
func (r *PostgresRepository) GetClient(ctx context.Context, clientID int64) (*model.Client, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM client WHERE client_id = $1`,
		clientID,
	)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	return c, nil
}

// MaxClientID возвращает наибольший занятый идентификатор клиента.
// Второе значение false означает, что клиентов ещё нет.
func (r *PostgresRepository) MaxClientID(ctx context.Context) (int64, bool, error) {
	var maxID *int64
	if err := r.pool.QueryRow(ctx, `SELECT MAX(client_id) FROM client`).Scan(&maxID); err != nil {
		return 0, false, fmt.Errorf("select max client id: %w", err)
	}
	if maxID == nil {
		return 0, false, nil
	}
	return *maxID, true, nil
}

// CreateClient сохраняет нового клиента с назначенными идентификатором и токеном.
// Уникальность обоих обеспечивается ограничениями БД.
func (r *PostgresRepository) CreateClient(ctx context.Context, clientID int64, in model.ClientInput, token string) (*model.Client, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO client (client_id, name, contact, country_code, address, url, webhook, token)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+clientColumns,
		clientID, in.Name, in.Contact, in.CountryCode, in.Address, in.URL, in.Webhook, token,
	)

	c, err := scanClient(row)
	if err != nil {
		if isUniqueViolation(err, "client_pkey") {
			return nil, ErrClientIDTaken
		}
		if isUniqueViolation(err, "client_token_key") {
			return nil, ErrClientTokenTaken
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	return c, nil
}

// UpdateClient выполняет частичное обновление клиента: nil-поля остаются прежними.
func (r *PostgresRepository) UpdateClient(ctx context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE client
		 SET name         = COALESCE($2, name),
		     contact      = COALESCE($3, contact),
		     country_code = COALESCE($4, country_code),
		     address      = COALESCE($5, address),
		     url          = COALESCE($6, url),
		     webhook      = COALESCE($7, webhook)
		 WHERE client_id = $1
		 RETURNING `+clientColumns,
		clientID, upd.Name, upd.Contact, upd.CountryCode, upd.Address, upd.URL, upd.Webhook,
	)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}

	return c, nil
}

// UpdateClientToken заменяет токен клиента на новый.
func (r *PostgresRepository) UpdateClientToken(ctx context.Context, clientID int64, token string) (*model.Client, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE client SET token = $2 WHERE client_id = $1 RETURNING `+clientColumns,
		clientID, token,
	)

	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		if isUniqueViolation(err, "client_token_key") {
			return nil, ErrClientTokenTaken
		}
		return nil, fmt.Errorf("update client token: %w", err)
	}

	return c, nil
}

// searchClientsQuery строит запрос поиска: подстрока без учёта регистра
// по текстовым полям, для числового запроса добавляется точное совпадение идентификатора.
func searchClientsQuery(q string, limit int) (string, []any) {
	query := `SELECT ` + clientColumns + `
	 FROM client
	 WHERE name ILIKE $1 OR contact ILIKE $1 OR address ILIKE $1 OR url ILIKE $1`
	args := []any{likePattern(q)}

	if id, err := strconv.ParseInt(q, 10, 64); err == nil {
		query += ` OR client_id = $2`
		args = append(args, id)
	}

	query += fmt.Sprintf(` ORDER BY client_id LIMIT %d`, limit)

	return query, args
}

// SearchClients ищет клиентов по подстроке в текстовых полях без учёта регистра.
// Если запрос числовой, дополнительно ищется точное совпадение идентификатора.
func (r *PostgresRepository) SearchClients(ctx context.Context, q string, limit int) ([]model.Client, error) {
	query, args := searchClientsQuery(q, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return clients, nil
}
