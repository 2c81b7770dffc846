package seed

import (
	"database/sql"
	"fmt"
)

// Config contains the values required by startup seed.
type Config struct {
	// StarterData inserts the sample catalog and services when the clinic
	// has no consumables yet.
	StarterData bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

var defaultCategories = []string{
	"Diagnosis",
	"Periodontics",
	"Restorative",
	"Endodontics",
	"Surgery",
	"Implant",
	"Prosthodontics",
	"Pedodontics",
	"Orthodontics",
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureCapacity(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensureCategories(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if cfg.StarterData {
		if err := ensureStarterData(tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM global_settings WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check global settings existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO global_settings (id, currency, vat_percent, default_profit_percent, rounding_nearest)
		VALUES (1, ?, ?, ?, ?)
	`, "EGP", 0, 40, 5); err != nil {
		return fmt.Errorf("insert global settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCapacity(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM clinic_capacity WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check clinic capacity existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO clinic_capacity (id, chairs, days_per_month, hours_per_day, utilization_percent)
		VALUES (1, ?, ?, ?, ?)
	`, 1, 24, 8, 80); err != nil {
		return fmt.Errorf("insert clinic capacity singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureCategories(tx *sql.Tx, stats *Stats) error {
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM service_categories`).Scan(&count); err != nil {
		return fmt.Errorf("count service categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for order, name := range defaultCategories {
		if _, err := tx.Exec(`
			INSERT INTO service_categories (name, display_order)
			VALUES (?, ?)
		`, name, order); err != nil {
			return fmt.Errorf("insert service category %q: %w", name, err)
		}
		stats.Inserts++
	}
	return nil
}
