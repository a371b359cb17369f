package repository

import (
	"context"
	"fmt"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// statsPeriodQuery считает агрегаты доставок за один период.
// Доставленной считается запись с заполненным time_put, возвратом — с пустым.
const statsPeriodQuery = `
	SELECT
		COUNT(*) FILTER (WHERE time_put IS NOT NULL) AS delivered_count,
		COUNT(*) FILTER (WHERE time_put IS NULL) AS return_count,
		ROUND(COALESCE(SUM(price), 0)::numeric, 2) AS total_price,
		ROUND(COALESCE(AVG(price) FILTER (WHERE time_put IS NOT NULL), 0)::numeric, 2) AS avg_price_delivered,
		ROUND(COALESCE(AVG(price) FILTER (WHERE time_put IS NULL), 0)::numeric, 2) AS avg_price_returned
	FROM courier_address
	WHERE `

// statsPeriods задаёт отчётные периоды в порядке вывода.
var statsPeriods = []struct {
	label     string
	condition string
}{
	{"Today", `date_put = CURRENT_DATE`},
	{"Yesterday", `date_put = CURRENT_DATE - 1`},
	{"Current Month", `date_put >= date_trunc('month', CURRENT_DATE)
		AND date_put < date_trunc('month', CURRENT_DATE) + INTERVAL '1 month'`},
	{"Previous Month", `date_put >= date_trunc('month', CURRENT_DATE) - INTERVAL '1 month'
		AND date_put < date_trunc('month', CURRENT_DATE)`},
}

// CourierStats возвращает статистику доставок за сегодня, вчера, текущий и прошлый месяц.
func (r *PostgresRepository) CourierStats(ctx context.Context) ([]model.CourierStat, error) {
	var stats []model.CourierStat

	err := r.withRetry(ctx, func() error {
		stats = make([]model.CourierStat, 0, len(statsPeriods))

		for _, p := range statsPeriods {
			s := model.CourierStat{Period: p.label}
			err := r.pool.QueryRow(ctx, statsPeriodQuery+p.condition).Scan(
				&s.DeliveredCount, &s.ReturnCount,
				&s.TotalPrice, &s.AvgPriceDelivered, &s.AvgPriceReturned,
			)
			if err != nil {
				return fmt.Errorf("select courier stats for %s: %w", p.label, err)
			}
			stats = append(stats, s)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
