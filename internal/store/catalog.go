package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/clinicprice/internal/pricing"
)

// loadCatalog reads every consumable, lab material, equipment item, fixed
// cost and salary.
func loadCatalog(ctx context.Context, q querier) (pricing.Catalog, error) {
	var (
		c   pricing.Catalog
		err error
	)
	if c.Consumables, err = listConsumables(ctx, q); err != nil {
		return pricing.Catalog{}, err
	}
	if c.LabMaterials, err = listLabMaterials(ctx, q); err != nil {
		return pricing.Catalog{}, err
	}
	if c.Equipment, err = listEquipment(ctx, q); err != nil {
		return pricing.Catalog{}, err
	}
	if c.FixedCosts, err = listFixedCosts(ctx, q); err != nil {
		return pricing.Catalog{}, err
	}
	if c.Salaries, err = listSalaries(ctx, q); err != nil {
		return pricing.Catalog{}, err
	}
	return c, nil
}

func listConsumables(ctx context.Context, q querier) ([]pricing.Consumable, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, item_name, pack_cost, cases_per_pack, units_per_case
		FROM consumables
		ORDER BY item_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query consumables: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.Consumable, 0)
	for rows.Next() {
		var c pricing.Consumable
		if err := rows.Scan(&c.ID, &c.Name, &c.PackCost, &c.CasesPerPack, &c.UnitsPerCase); err != nil {
			return nil, fmt.Errorf("scan consumable: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consumables: %w", err)
	}
	return items, nil
}

func listLabMaterials(ctx context.Context, q querier) ([]pricing.LabMaterial, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, material_name, COALESCE(lab_name, ''), unit_cost
		FROM lab_materials
		ORDER BY material_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query lab materials: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.LabMaterial, 0)
	for rows.Next() {
		var m pricing.LabMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.LabName, &m.UnitCost); err != nil {
			return nil, fmt.Errorf("scan lab material: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lab materials: %w", err)
	}
	return items, nil
}

func listEquipment(ctx context.Context, q querier) ([]pricing.Equipment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, asset_name, purchase_cost, life_years, allocation_type, monthly_usage_hours
		FROM equipment
		ORDER BY asset_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.Equipment, 0)
	for rows.Next() {
		var (
			e          pricing.Equipment
			allocation string
			usage      sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.PurchaseCost, &e.LifeYears, &allocation, &usage); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		e.AllocationType = pricing.AllocationType(allocation)
		e.MonthlyUsageHours = usage.Float64
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equipment: %w", err)
	}
	return items, nil
}

func listFixedCosts(ctx context.Context, q querier) ([]pricing.FixedCost, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, category, monthly_amount, included
		FROM fixed_costs
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("query fixed costs: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.FixedCost, 0)
	for rows.Next() {
		var fc pricing.FixedCost
		if err := rows.Scan(&fc.ID, &fc.Category, &fc.MonthlyAmount, &fc.Included); err != nil {
			return nil, fmt.Errorf("scan fixed cost: %w", err)
		}
		items = append(items, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixed costs: %w", err)
	}
	return items, nil
}

func listSalaries(ctx context.Context, q querier) ([]pricing.Salary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, role_name, monthly_salary, included
		FROM salaries
		ORDER BY role_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query salaries: %w", err)
	}
	defer rows.Close()

	items := make([]pricing.Salary, 0)
	for rows.Next() {
		var sal pricing.Salary
		if err := rows.Scan(&sal.ID, &sal.Role, &sal.MonthlySalary, &sal.Included); err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		items = append(items, sal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salaries: %w", err)
	}
	return items, nil
}
