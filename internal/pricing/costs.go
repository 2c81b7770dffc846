package pricing

import "fmt"

// Overhead splits monthly overhead into its sources.
type Overhead struct {
	FixedCosts        float64 `json:"fixed_costs"`
	Salaries          float64 `json:"salaries"`
	FixedDepreciation float64 `json:"fixed_depreciation"`
	Total             float64 `json:"total"`
}

// MonthlyDepreciation returns purchaseCost / (lifeYears * 12).
func MonthlyDepreciation(e Equipment) (float64, error) {
	if e.LifeYears < 1 {
		return 0, fmt.Errorf("equipment %d (%s) life_years must be >= 1, got %d: %w", e.ID, e.Name, e.LifeYears, ErrInvalidInput)
	}
	if e.PurchaseCost < 0 {
		return 0, fmt.Errorf("equipment %d (%s) purchase_cost must be >= 0: %w", e.ID, e.Name, ErrInvalidInput)
	}
	return e.PurchaseCost / (float64(e.LifeYears) * 12.0), nil
}

// PerHourCost returns the depreciation charged for one hour of use of
// per-hour equipment.
func PerHourCost(e Equipment) (float64, error) {
	if e.AllocationType != AllocationPerHour {
		return 0, fmt.Errorf("equipment %d (%s) allocation %q is not billable per hour: %w", e.ID, e.Name, e.AllocationType, ErrInvalidConfiguration)
	}
	if e.MonthlyUsageHours <= 0 {
		return 0, fmt.Errorf("equipment %d (%s) has no monthly usage hours: %w", e.ID, e.Name, ErrDivisionByZero)
	}
	monthly, err := MonthlyDepreciation(e)
	if err != nil {
		return 0, err
	}
	return monthly / e.MonthlyUsageHours, nil
}

// SummarizeOverhead sums included fixed costs, included salaries and the
// depreciation of fixed-allocation equipment. Per-hour equipment is charged
// per use and never enters overhead.
func SummarizeOverhead(c Catalog) (Overhead, error) {
	var o Overhead
	for _, fc := range c.FixedCosts {
		if !fc.Included {
			continue
		}
		if fc.MonthlyAmount < 0 {
			return Overhead{}, fmt.Errorf("fixed cost %d (%s) is negative: %w", fc.ID, fc.Category, ErrInvalidInput)
		}
		o.FixedCosts += fc.MonthlyAmount
	}
	for _, s := range c.Salaries {
		if !s.Included {
			continue
		}
		if s.MonthlySalary < 0 {
			return Overhead{}, fmt.Errorf("salary %d (%s) is negative: %w", s.ID, s.Role, ErrInvalidInput)
		}
		o.Salaries += s.MonthlySalary
	}
	for _, e := range c.Equipment {
		switch e.AllocationType {
		case AllocationFixed:
			monthly, err := MonthlyDepreciation(e)
			if err != nil {
				return Overhead{}, err
			}
			o.FixedDepreciation += monthly
		case AllocationPerHour:
		default:
			return Overhead{}, fmt.Errorf("equipment %d (%s) has unknown allocation type %q: %w", e.ID, e.Name, e.AllocationType, ErrInvalidConfiguration)
		}
	}
	o.Total = o.FixedCosts + o.Salaries + o.FixedDepreciation
	return o, nil
}

// MaterialsCost sums consumable and lab material lines of a service.
func MaterialsCost(s Service, c Catalog) (float64, error) {
	return materialsCost(s, indexCatalog(c))
}

func materialsCost(s Service, idx catalogIndex) (float64, error) {
	total := 0.0
	for _, line := range s.Consumables {
		if line.Quantity <= 0 {
			return 0, fmt.Errorf("consumable %d quantity must be > 0: %w", line.ConsumableID, ErrInvalidInput)
		}
		consumable, ok := idx.consumables[line.ConsumableID]
		if !ok {
			return 0, fmt.Errorf("consumable %d: %w", line.ConsumableID, ErrUnknownReference)
		}
		unit, err := lineUnitPrice(line.CustomUnitPrice, func() (float64, error) { return UnitCost(consumable) })
		if err != nil {
			return 0, err
		}
		total += line.Quantity * unit
	}
	for _, line := range s.Materials {
		if line.Quantity <= 0 {
			return 0, fmt.Errorf("lab material %d quantity must be > 0: %w", line.MaterialID, ErrInvalidInput)
		}
		material, ok := idx.materials[line.MaterialID]
		if !ok {
			return 0, fmt.Errorf("lab material %d: %w", line.MaterialID, ErrUnknownReference)
		}
		unit, err := lineUnitPrice(line.CustomUnitPrice, func() (float64, error) {
			if material.UnitCost < 0 {
				return 0, fmt.Errorf("lab material %d (%s) unit cost is negative: %w", material.ID, material.Name, ErrInvalidInput)
			}
			return material.UnitCost, nil
		})
		if err != nil {
			return 0, err
		}
		total += line.Quantity * unit
	}
	return total, nil
}

func lineUnitPrice(custom *float64, catalogPrice func() (float64, error)) (float64, error) {
	if custom == nil {
		return catalogPrice()
	}
	if *custom < 0 {
		return 0, fmt.Errorf("custom unit price must be >= 0: %w", ErrInvalidInput)
	}
	return *custom, nil
}

// EquipmentCost sums hoursUsed * perHourCost over a service's equipment lines.
func EquipmentCost(s Service, c Catalog) (float64, error) {
	return equipmentCost(s, indexCatalog(c))
}

func equipmentCost(s Service, idx catalogIndex) (float64, error) {
	total := 0.0
	for _, line := range s.Equipment {
		if line.HoursUsed <= 0 {
			return 0, fmt.Errorf("equipment %d hours used must be > 0: %w", line.EquipmentID, ErrInvalidInput)
		}
		eq, ok := idx.equipment[line.EquipmentID]
		if !ok {
			return 0, fmt.Errorf("equipment %d: %w", line.EquipmentID, ErrUnknownReference)
		}
		rate, err := PerHourCost(eq)
		if err != nil {
			return 0, err
		}
		total += line.HoursUsed * rate
	}
	return total, nil
}
