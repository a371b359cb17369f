package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

const receiverColumns = `receiver_id, name, phone_nums, email, passport_id, inn, birth_date`

func scanReceiver(row pgx.Row) (*model.Receiver, error) {
	var (
		rec       model.Receiver
		birthDate *time.Time
	)
	err := row.Scan(&rec.ReceiverID, &rec.Name, &rec.PhoneNums, &rec.Email, &rec.PassportID, &rec.INN, &birthDate)
	if err != nil {
		return nil, err
	}
	if birthDate != nil {
		rec.BirthDate = &model.Date{Time: *birthDate}
	}
	return &rec, nil
}

func birthDateArg(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// ListReceivers возвращает страницу получателей и их общее количество.
func (r *PostgresRepository) ListReceivers(ctx context.Context, page model.Page) ([]model.Receiver, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM receiver`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count receivers: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+receiverColumns+`
		 FROM receiver
		 ORDER BY receiver_id
		 LIMIT $1 OFFSET $2`,
		page.PerPage, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select receivers: %w", err)
	}
	defer rows.Close()

	var receivers []model.Receiver
	for rows.Next() {
		rec, err := scanReceiver(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan receiver: %w", err)
		}
		receivers = append(receivers, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return receivers, total, nil
}

// GetReceiver возвращает получателя вместе с его отправлениями.
func (r *PostgresRepository) GetReceiver(ctx context.Context, receiverID int64) (*model.Receiver, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+receiverColumns+` FROM receiver WHERE receiver_id = $1`,
		receiverID,
	)

	rec, err := scanReceiver(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("get receiver: %w", err)
	}

	parcels, err := r.parcelsOfReceivers(ctx, []int64{rec.ReceiverID})
	if err != nil {
		return nil, err
	}
	rec.Parcels = parcels[rec.ReceiverID]

	return rec, nil
}

// CreateReceiver сохраняет нового получателя.
func (r *PostgresRepository) CreateReceiver(ctx context.Context, in model.ReceiverInput) (*model.Receiver, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO receiver (name, phone_nums, email, passport_id, inn, birth_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+receiverColumns,
		in.Name, in.PhoneNums, in.Email, in.PassportID, in.INN, birthDateArg(in.BirthDate),
	)

	rec, err := scanReceiver(row)
	if err != nil {
		return nil, fmt.Errorf("insert receiver: %w", err)
	}

	return rec, nil
}

// UpdateReceiver выполняет частичное обновление получателя.
func (r *PostgresRepository) UpdateReceiver(ctx context.Context, receiverID int64, upd model.ReceiverUpdate) (*model.Receiver, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE receiver
		 SET name        = COALESCE($2, name),
		     phone_nums  = COALESCE($3, phone_nums),
		     email       = COALESCE($4, email),
		     passport_id = COALESCE($5, passport_id),
		     inn         = COALESCE($6, inn),
		     birth_date  = COALESCE($7, birth_date)
		 WHERE receiver_id = $1
		 RETURNING `+receiverColumns,
		receiverID, upd.Name, upd.PhoneNums, upd.Email, upd.PassportID, upd.INN, birthDateArg(upd.BirthDate),
	)

	rec, err := scanReceiver(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("update receiver: %w", err)
	}

	return rec, nil
}

// searchReceiversQuery строит запрос поиска: подстрока без учёта регистра
// по текстовым полям и точное совпадение ИНН, если он указан.
func searchReceiversQuery(q string, inn *int64, limit int) (string, []any) {
	query := `SELECT ` + receiverColumns + ` FROM receiver WHERE TRUE`
	args := []any{}

	if q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		query += fmt.Sprintf(
			` AND (name ILIKE $%d OR phone_nums ILIKE $%d OR email ILIKE $%d OR passport_id ILIKE $%d)`,
			n, n, n, n,
		)
	}

	if inn != nil {
		args = append(args, *inn)
		query += fmt.Sprintf(` AND inn = $%d`, len(args))
	}

	query += fmt.Sprintf(` ORDER BY receiver_id LIMIT %d`, limit)

	return query, args
}

// SearchReceivers ищет получателей по подстроке в имени, телефонах, email и паспорте.
// При указании inn дополнительно фильтрует по точному совпадению ИНН.
func (r *PostgresRepository) SearchReceivers(ctx context.Context, q string, inn *int64, limit int) ([]model.Receiver, error) {
	query, args := searchReceiversQuery(q, inn, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search receivers: %w", err)
	}
	defer rows.Close()

	var receivers []model.Receiver
	for rows.Next() {
		rec, err := scanReceiver(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receiver: %w", err)
		}
		receivers = append(receivers, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return receivers, nil
}

// parcelsOfReceivers загружает отправления для набора получателей одним запросом.
func (r *PostgresRepository) parcelsOfReceivers(ctx context.Context, receiverIDs []int64) (map[int64][]model.Parcel, error) {
	if len(receiverIDs) == 0 {
		return map[int64][]model.Parcel{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT parcel_id, order_no, client_id, receiver_id, current_status
		 FROM parcels
		 WHERE receiver_id = ANY($1)
		 ORDER BY parcel_id`,
		receiverIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("select parcels of receivers: %w", err)
	}
	defer rows.Close()

	res := make(map[int64][]model.Parcel)
	for rows.Next() {
		var p model.Parcel
		if err := rows.Scan(&p.ParcelID, &p.OrderNo, &p.ClientID, &p.ReceiverID, &p.CurrentStatus); err != nil {
			return nil, fmt.Errorf("scan parcel: %w", err)
		}
		res[p.ReceiverID] = append(res[p.ReceiverID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}
