package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/clinicprice/internal/pricing"
)

// GetSettings returns the global settings singleton.
func (s *Store) GetSettings(ctx context.Context) (pricing.GlobalSettings, error) {
	return getSettings(ctx, s.db)
}

func getSettings(ctx context.Context, q querier) (pricing.GlobalSettings, error) {
	var gs pricing.GlobalSettings
	err := q.QueryRowContext(ctx, `
		SELECT currency, vat_percent, default_profit_percent, rounding_nearest
		FROM global_settings
		WHERE id = 1
	`).Scan(&gs.Currency, &gs.VATPercent, &gs.DefaultProfitPercent, &gs.RoundingNearest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.GlobalSettings{}, fmt.Errorf("global_settings singleton: %w", ErrNotFound)
		}
		return pricing.GlobalSettings{}, fmt.Errorf("query global_settings: %w", err)
	}
	return gs, nil
}

// SaveSettings upserts the global settings singleton.
func (s *Store) SaveSettings(ctx context.Context, gs pricing.GlobalSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO global_settings (id, currency, vat_percent, default_profit_percent, rounding_nearest)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			currency = excluded.currency,
			vat_percent = excluded.vat_percent,
			default_profit_percent = excluded.default_profit_percent,
			rounding_nearest = excluded.rounding_nearest,
			updated_at = CURRENT_TIMESTAMP
	`, gs.Currency, gs.VATPercent, gs.DefaultProfitPercent, gs.RoundingNearest)
	if err != nil {
		return fmt.Errorf("upsert global_settings: %w", err)
	}
	return nil
}

// GetCapacity returns the clinic capacity singleton.
func (s *Store) GetCapacity(ctx context.Context) (pricing.Capacity, error) {
	return getCapacity(ctx, s.db)
}

func getCapacity(ctx context.Context, q querier) (pricing.Capacity, error) {
	var c pricing.Capacity
	err := q.QueryRowContext(ctx, `
		SELECT chairs, days_per_month, hours_per_day, utilization_percent
		FROM clinic_capacity
		WHERE id = 1
	`).Scan(&c.Chairs, &c.DaysPerMonth, &c.HoursPerDay, &c.UtilizationPercent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Capacity{}, fmt.Errorf("clinic_capacity singleton: %w", ErrNotFound)
		}
		return pricing.Capacity{}, fmt.Errorf("query clinic_capacity: %w", err)
	}
	return c, nil
}

// SaveCapacity upserts the clinic capacity singleton.
func (s *Store) SaveCapacity(ctx context.Context, c pricing.Capacity) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clinic_capacity (id, chairs, days_per_month, hours_per_day, utilization_percent)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			chairs = excluded.chairs,
			days_per_month = excluded.days_per_month,
			hours_per_day = excluded.hours_per_day,
			utilization_percent = excluded.utilization_percent,
			updated_at = CURRENT_TIMESTAMP
	`, c.Chairs, c.DaysPerMonth, c.HoursPerDay, c.UtilizationPercent)
	if err != nil {
		return fmt.Errorf("upsert clinic_capacity: %w", err)
	}
	return nil
}
