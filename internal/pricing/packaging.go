package pricing

import "fmt"

// UnitCost returns the cost of a single unit of a consumable:
// packCost / (casesPerPack * unitsPerCase).
func UnitCost(c Consumable) (float64, error) {
	if c.CasesPerPack == 0 || c.UnitsPerCase == 0 {
		return 0, fmt.Errorf("consumable %d (%s) has zero packaging denominator: %w", c.ID, c.Name, ErrDivisionByZero)
	}
	if c.CasesPerPack < 0 || c.UnitsPerCase < 0 || c.PackCost < 0 {
		return 0, fmt.Errorf("consumable %d (%s) has negative packaging values: %w", c.ID, c.Name, ErrInvalidInput)
	}
	units := float64(c.CasesPerPack) * float64(c.UnitsPerCase)
	return c.PackCost / units, nil
}
