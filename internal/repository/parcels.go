package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// parcelJoinedColumns выбирает отправление вместе с клиентом и получателем одним запросом.
const parcelJoinedColumns = `
	p.parcel_id, p.order_no, p.client_id, p.receiver_id, p.current_status,
	c.client_id, c.name, c.contact, c.country_code, c.address, c.url, c.webhook, c.token,
	r.receiver_id, r.name, r.phone_nums, r.email, r.passport_id, r.inn, r.birth_date`

func scanParcelJoined(row pgx.Row) (*model.Parcel, error) {
	var (
		p         model.Parcel
		c         model.Client
		rec       model.Receiver
		birthDate *time.Time
	)

	err := row.Scan(
		&p.ParcelID, &p.OrderNo, &p.ClientID, &p.ReceiverID, &p.CurrentStatus,
		&c.ClientID, &c.Name, &c.Contact, &c.CountryCode, &c.Address, &c.URL, &c.Webhook, &c.Token,
		&rec.ReceiverID, &rec.Name, &rec.PhoneNums, &rec.Email, &rec.PassportID, &rec.INN, &birthDate,
	)
	if err != nil {
		return nil, err
	}

	if birthDate != nil {
		rec.BirthDate = &model.Date{Time: *birthDate}
	}

	p.Client = &c
	p.Receiver = &rec
	return &p, nil
}

// ListParcels возвращает страницу отправлений с вложениями, клиентом и получателем.
func (r *PostgresRepository) ListParcels(ctx context.Context, page model.Page) ([]model.Parcel, int64, error) {
	var (
		parcels []model.Parcel
		total   int64
	)

	err := r.withRetry(ctx, func() error {
		parcels = nil

		if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM parcels`).Scan(&total); err != nil {
			return fmt.Errorf("count parcels: %w", err)
		}

		rows, err := r.pool.Query(ctx,
			`SELECT `+parcelJoinedColumns+`
			 FROM parcels p
			 JOIN client c ON c.client_id = p.client_id
			 JOIN receiver r ON r.receiver_id = p.receiver_id
			 ORDER BY p.parcel_id
			 LIMIT $1 OFFSET $2`,
			page.PerPage, page.Offset(),
		)
		if err != nil {
			return fmt.Errorf("select parcels: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanParcelJoined(rows)
			if err != nil {
				return fmt.Errorf("scan parcel: %w", err)
			}
			parcels = append(parcels, *p)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows error: %w", err)
		}

		return r.attachItems(ctx, parcels)
	})
	if err != nil {
		return nil, 0, err
	}

	return parcels, total, nil
}

// GetParcel возвращает отправление с вложениями, клиентом и получателем.
func (r *PostgresRepository) GetParcel(ctx context.Context, parcelID int64) (*model.Parcel, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+parcelJoinedColumns+`
		 FROM parcels p
		 JOIN client c ON c.client_id = p.client_id
		 JOIN receiver r ON r.receiver_id = p.receiver_id
		 WHERE p.parcel_id = $1`,
		parcelID,
	)

	p, err := scanParcelJoined(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParcelNotFound
		}
		return nil, fmt.Errorf("get parcel: %w", err)
	}

	parcels := []model.Parcel{*p}
	if err := r.attachItems(ctx, parcels); err != nil {
		return nil, err
	}

	return &parcels[0], nil
}

// ParcelsByClient возвращает все отправления клиента с вложениями и связанными сущностями.
func (r *PostgresRepository) ParcelsByClient(ctx context.Context, clientID int64) ([]model.Parcel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+parcelJoinedColumns+`
		 FROM parcels p
		 JOIN client c ON c.client_id = p.client_id
		 JOIN receiver r ON r.receiver_id = p.receiver_id
		 WHERE p.client_id = $1
		 ORDER BY p.parcel_id`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("select parcels by client: %w", err)
	}
	defer rows.Close()

	var parcels []model.Parcel
	for rows.Next() {
		p, err := scanParcelJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parcel: %w", err)
		}
		parcels = append(parcels, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if err := r.attachItems(ctx, parcels); err != nil {
		return nil, err
	}

	return parcels, nil
}

// CreateParcel сохраняет новое отправление.
func (r *PostgresRepository) CreateParcel(ctx context.Context, in model.ParcelInput) (*model.Parcel, error) {
	var p model.Parcel
	err := r.pool.QueryRow(ctx,
		`INSERT INTO parcels (order_no, client_id, receiver_id, current_status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING parcel_id, order_no, client_id, receiver_id, current_status`,
		in.OrderNo, in.ClientID, in.ReceiverID, in.CurrentStatus,
	).Scan(&p.ParcelID, &p.OrderNo, &p.ClientID, &p.ReceiverID, &p.CurrentStatus)
	if err != nil {
		if isForeignKeyViolation(err, "parcels_client_id_fkey") {
			return nil, ErrClientNotFound
		}
		if isForeignKeyViolation(err, "parcels_receiver_id_fkey") {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("insert parcel: %w", err)
	}

	return &p, nil
}

// UpdateParcel выполняет частичное обновление отправления.
func (r *PostgresRepository) UpdateParcel(ctx context.Context, parcelID int64, upd model.ParcelUpdate) (*model.Parcel, error) {
	var p model.Parcel
	err := r.pool.QueryRow(ctx,
		`UPDATE parcels
		 SET order_no       = COALESCE($2, order_no),
		     receiver_id    = COALESCE($3, receiver_id),
		     current_status = COALESCE($4, current_status)
		 WHERE parcel_id = $1
		 RETURNING parcel_id, order_no, client_id, receiver_id, current_status`,
		parcelID, upd.OrderNo, upd.ReceiverID, upd.CurrentStatus,
	).Scan(&p.ParcelID, &p.OrderNo, &p.ClientID, &p.ReceiverID, &p.CurrentStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParcelNotFound
		}
		if isForeignKeyViolation(err, "parcels_receiver_id_fkey") {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("update parcel: %w", err)
	}

	return &p, nil
}

// attachItems загружает вложения для набора отправлений одним запросом.
func (r *PostgresRepository) attachItems(ctx context.Context, parcels []model.Parcel) error {
	if len(parcels) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(parcels))
	for i := range parcels {
		ids = append(ids, parcels[i].ParcelID)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+`
		 FROM item
		 WHERE parcel_id = ANY($1)
		 ORDER BY id`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("select items of parcels: %w", err)
	}
	defer rows.Close()

	byParcel := make(map[int64][]model.Item)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		byParcel[it.ParcelID] = append(byParcel[it.ParcelID], *it)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}

	for i := range parcels {
		parcels[i].Items = byParcel[parcels[i].ParcelID]
	}

	return nil
}
