package pricing

import "fmt"

// Validate reports ErrInvalidCapacity when any factor would leave the chair
// hourly rate undefined.
func (c Capacity) Validate() error {
	switch {
	case c.Chairs <= 0:
		return fmt.Errorf("chairs must be > 0, got %d: %w", c.Chairs, ErrInvalidCapacity)
	case c.DaysPerMonth <= 0:
		return fmt.Errorf("days_per_month must be > 0, got %v: %w", c.DaysPerMonth, ErrInvalidCapacity)
	case c.HoursPerDay <= 0:
		return fmt.Errorf("hours_per_day must be > 0, got %v: %w", c.HoursPerDay, ErrInvalidCapacity)
	case c.UtilizationPercent <= 0 || c.UtilizationPercent > 100:
		return fmt.Errorf("utilization_percent must be in (0, 100], got %v: %w", c.UtilizationPercent, ErrInvalidCapacity)
	}
	return nil
}

// EffectiveHours returns billable chair-hours per month after utilization.
func EffectiveHours(c Capacity) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return float64(c.Chairs) * c.DaysPerMonth * c.HoursPerDay * (c.UtilizationPercent / 100.0), nil
}

// ChairHourlyRate spreads monthly overhead over effective hours.
func ChairHourlyRate(c Capacity, monthlyFixedTotal float64) (float64, error) {
	hours, err := EffectiveHours(c)
	if err != nil {
		return 0, err
	}
	if hours == 0 {
		return 0, fmt.Errorf("effective hours resolved to zero: %w", ErrDivisionByZero)
	}
	return monthlyFixedTotal / hours, nil
}
