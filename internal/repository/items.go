package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

const itemColumns = `id, parcel_id, tn_code, tn_position, measure_code, quantity, price, currency, model, imei1, imei2, url`

// itemJoinedColumns выбирает позицию вместе с её отправлением.
const itemJoinedColumns = `
	i.id, i.parcel_id, i.tn_code, i.tn_position, i.measure_code, i.quantity, i.price, i.currency, i.model, i.imei1, i.imei2, i.url,
	p.parcel_id, p.order_no, p.client_id, p.receiver_id, p.current_status`

func scanItem(row pgx.Row) (*model.Item, error) {
	var it model.Item
	err := row.Scan(
		&it.ID, &it.ParcelID, &it.TnCode, &it.TnPosition, &it.MeasureCode,
		&it.Quantity, &it.Price, &it.Currency, &it.Model, &it.IMEI1, &it.IMEI2, &it.URL,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func scanItemJoined(row pgx.Row) (*model.Item, error) {
	var (
		it model.Item
		p  model.Parcel
	)
	err := row.Scan(
		&it.ID, &it.ParcelID, &it.TnCode, &it.TnPosition, &it.MeasureCode,
		&it.Quantity, &it.Price, &it.Currency, &it.Model, &it.IMEI1, &it.IMEI2, &it.URL,
		&p.ParcelID, &p.OrderNo, &p.ClientID, &p.ReceiverID, &p.CurrentStatus,
	)
	if err != nil {
		return nil, err
	}
	it.Parcel = &p
	return &it, nil
}

// ListItems возвращает страницу товарных позиций вместе с их отправлениями.
func (r *PostgresRepository) ListItems(ctx context.Context, page model.Page) ([]model.Item, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM item`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+itemJoinedColumns+`
		 FROM item i
		 JOIN parcels p ON p.parcel_id = i.parcel_id
		 ORDER BY i.id
		 LIMIT $1 OFFSET $2`,
		page.PerPage, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItemJoined(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return items, total, nil
}

// GetItem возвращает товарную позицию вместе с её отправлением.
func (r *PostgresRepository) GetItem(ctx context.Context, itemID int64) (*model.Item, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+itemJoinedColumns+`
		 FROM item i
		 JOIN parcels p ON p.parcel_id = i.parcel_id
		 WHERE i.id = $1`,
		itemID,
	)

	it, err := scanItemJoined(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return it, nil
}

// ItemsByParcel возвращает все позиции указанного отправления вместе с ним самим.
func (r *PostgresRepository) ItemsByParcel(ctx context.Context, parcelID int64) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemJoinedColumns+`
		 FROM item i
		 JOIN parcels p ON p.parcel_id = i.parcel_id
		 WHERE i.parcel_id = $1
		 ORDER BY i.id`,
		parcelID,
	)
	if err != nil {
		return nil, fmt.Errorf("select items by parcel: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		it, err := scanItemJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}

// CreateItem сохраняет новую товарную позицию.
func (r *PostgresRepository) CreateItem(ctx context.Context, in model.ItemInput) (*model.Item, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO item (parcel_id, tn_code, tn_position, measure_code, quantity, price, currency, model, imei1, imei2, url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+itemColumns,
		in.ParcelID, in.TnCode, in.TnPosition, in.MeasureCode, in.Quantity,
		in.Price, in.Currency, in.Model, in.IMEI1, in.IMEI2, in.URL,
	)

	it, err := scanItem(row)
	if err != nil {
		if isForeignKeyViolation(err, "item_parcel_id_fkey") {
			return nil, ErrParcelNotFound
		}
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return it, nil
}

// UpdateItem выполняет частичное обновление товарной позиции.
func (r *PostgresRepository) UpdateItem(ctx context.Context, itemID int64, upd model.ItemUpdate) (*model.Item, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE item
		 SET tn_code      = COALESCE($2, tn_code),
		     tn_position  = COALESCE($3, tn_position),
		     measure_code = COALESCE($4, measure_code),
		     quantity     = COALESCE($5, quantity),
		     price        = COALESCE($6, price),
		     currency     = COALESCE($7, currency),
		     model        = COALESCE($8, model),
		     imei1        = COALESCE($9, imei1),
		     imei2        = COALESCE($10, imei2),
		     url          = COALESCE($11, url)
		 WHERE id = $1
		 RETURNING `+itemColumns,
		itemID, upd.TnCode, upd.TnPosition, upd.MeasureCode, upd.Quantity,
		upd.Price, upd.Currency, upd.Model, upd.IMEI1, upd.IMEI2, upd.URL,
	)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	return it, nil
}
