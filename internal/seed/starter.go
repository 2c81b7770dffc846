package seed

import (
	"database/sql"
	"fmt"
)

type starterConsumable struct {
	name         string
	packCost     float64
	casesPerPack int
	unitsPerCase int
}

type starterMaterial struct {
	name        string
	labName     string
	unitCost    float64
	description string
}

type starterEquipment struct {
	name         string
	purchaseCost float64
	lifeYears    int
	allocation   string
	usageHours   any
}

type starterLine struct {
	item     int
	quantity float64
}

type starterService struct {
	name         string
	category     string
	chairHours   float64
	hourlyFee    float64
	currentPrice float64
	consumables  []starterLine
	materials    []starterLine
	equipment    []starterLine
}

const (
	gloves = iota
	anesthetic
	composite
	bonding
	etch
	cotton
	gauze
	bur
	bib
	tempFill
)

var starterConsumables = []starterConsumable{
	{"Nitrile Gloves (Box of 100)", 180, 1, 100},
	{"Anesthetic Cartridge (Lidocaine)", 850, 1, 50},
	{"Composite Resin A2 (4g)", 1200, 1, 1},
	{"Bonding Agent (5ml)", 900, 1, 40},
	{"Etch Gel 37% (3ml)", 120, 1, 15},
	{"Cotton Rolls (Pack of 1000)", 250, 1, 1000},
	{"Gauze 2x2 (Pack of 200)", 180, 1, 200},
	{"Diamond Bur (Pack of 5)", 350, 1, 5},
	{"Disposable Bib", 200, 1, 100},
	{"Temporary Filling Material", 280, 1, 25},
}

var starterMaterials = []starterMaterial{
	{"Zirconia Crown", "Premium Dental Lab", 3500, "High-quality ceramic crown"},
	{"PFM Crown", "Premium Dental Lab", 2200, "Porcelain-fused-to-metal crown"},
	{"Porcelain Veneer", "Elite Ceramics Lab", 3000, "Thin ceramic veneer"},
	{"Full Denture (Acrylic)", "Prosthetics Lab", 6000, "Complete denture set"},
	{"Night Guard", "Appliance Lab", 1200, "Custom occlusal guard"},
}

var starterFixedCosts = []struct {
	category string
	amount   float64
	notes    string
}{
	{"Rent", 20000, "Monthly clinic rent"},
	{"Utilities (Electricity/Water/Internet)", 2500, "Base utility costs"},
	{"Insurance & Admin", 3000, "Insurance and administrative expenses"},
}

const (
	zirconiaCrownMaterial = 0
	xray                  = 2
)

var starterEquipmentItems = []starterEquipment{
	{"Dental Chair", 100000, 10, "fixed", nil},
	{"Autoclave Sterilizer", 35000, 7, "fixed", nil},
	{"Dental X-Ray Unit", 80000, 8, "per-hour", 40.0},
}

var starterSalaries = []struct {
	role   string
	amount float64
	notes  string
}{
	{"Receptionist", 8000, "Front desk staff"},
	{"Dental Assistant", 12000, "Clinical assistant"},
	{"Cleaner", 4000, "Facility maintenance"},
}

var starterServices = []starterService{
	{
		name: "Dental Checkup & Cleaning", category: "Diagnosis",
		chairHours: 0.75, hourlyFee: 400, currentPrice: 400,
		consumables: []starterLine{{gloves, 4}, {cotton, 10}, {gauze, 5}, {bib, 1}},
	},
	{
		name: "Composite Filling", category: "Restorative",
		chairHours: 0.75, hourlyFee: 500, currentPrice: 700,
		consumables: []starterLine{
			{gloves, 4}, {anesthetic, 1}, {composite, 0.4}, {bonding, 1},
			{etch, 1}, {cotton, 8}, {bur, 1}, {bib, 1},
		},
	},
	{
		name: "Root Canal Treatment", category: "Endodontics",
		chairHours: 2, hourlyFee: 800, currentPrice: 2500,
		consumables: []starterLine{
			{gloves, 6}, {anesthetic, 2}, {cotton, 20}, {gauze, 10}, {bib, 1}, {tempFill, 1},
		},
		equipment: []starterLine{{xray, 0.25}},
	},
	{
		name: "Zirconia Crown", category: "Prosthodontics",
		chairHours: 2, hourlyFee: 800, currentPrice: 6000,
		consumables: []starterLine{{gloves, 6}, {anesthetic, 2}, {bur, 3}, {bib, 1}, {tempFill, 1}},
		materials:   []starterLine{{zirconiaCrownMaterial, 1}},
		equipment:   []starterLine{{xray, 0.25}},
	},
	{
		name: "Teeth Whitening", category: "Restorative",
		chairHours: 1.5, hourlyFee: 500, currentPrice: 3000,
		consumables: []starterLine{{gloves, 4}, {bib, 1}},
	},
}

// ensureStarterData inserts the sample catalog once. Existing consumables mean
// the clinic already owns its data and nothing is touched.
func ensureStarterData(tx *sql.Tx, stats *Stats) error {
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM consumables`).Scan(&count); err != nil {
		return fmt.Errorf("count consumables: %w", err)
	}
	if count > 0 {
		return nil
	}

	consumableIDs := make([]int64, 0, len(starterConsumables))
	for _, c := range starterConsumables {
		id, err := insert(tx, stats, `
			INSERT INTO consumables (item_name, pack_cost, cases_per_pack, units_per_case)
			VALUES (?, ?, ?, ?)
		`, c.name, c.packCost, c.casesPerPack, c.unitsPerCase)
		if err != nil {
			return fmt.Errorf("insert consumable %q: %w", c.name, err)
		}
		consumableIDs = append(consumableIDs, id)
	}

	materialIDs := make([]int64, 0, len(starterMaterials))
	for _, m := range starterMaterials {
		id, err := insert(tx, stats, `
			INSERT INTO lab_materials (material_name, lab_name, unit_cost, description)
			VALUES (?, ?, ?, ?)
		`, m.name, m.labName, m.unitCost, m.description)
		if err != nil {
			return fmt.Errorf("insert lab material %q: %w", m.name, err)
		}
		materialIDs = append(materialIDs, id)
	}

	for _, fc := range starterFixedCosts {
		if _, err := insert(tx, stats, `
			INSERT INTO fixed_costs (category, monthly_amount, included, notes)
			VALUES (?, ?, TRUE, ?)
		`, fc.category, fc.amount, fc.notes); err != nil {
			return fmt.Errorf("insert fixed cost %q: %w", fc.category, err)
		}
	}

	equipmentIDs := make([]int64, 0, len(starterEquipmentItems))
	for _, e := range starterEquipmentItems {
		id, err := insert(tx, stats, `
			INSERT INTO equipment (asset_name, purchase_cost, life_years, allocation_type, monthly_usage_hours)
			VALUES (?, ?, ?, ?, ?)
		`, e.name, e.purchaseCost, e.lifeYears, e.allocation, e.usageHours)
		if err != nil {
			return fmt.Errorf("insert equipment %q: %w", e.name, err)
		}
		equipmentIDs = append(equipmentIDs, id)
	}

	for _, s := range starterSalaries {
		if _, err := insert(tx, stats, `
			INSERT INTO salaries (role_name, monthly_salary, included, notes)
			VALUES (?, ?, TRUE, ?)
		`, s.role, s.amount, s.notes); err != nil {
			return fmt.Errorf("insert salary %q: %w", s.role, err)
		}
	}

	for _, svc := range starterServices {
		serviceID, err := insert(tx, stats, `
			INSERT INTO services (category_id, name, chair_time_hours, doctor_fee_type, doctor_hourly_fee, use_default_profit, current_price)
			VALUES ((SELECT id FROM service_categories WHERE name = ?), ?, ?, 'hourly', ?, TRUE, ?)
		`, svc.category, svc.name, svc.chairHours, svc.hourlyFee, svc.currentPrice)
		if err != nil {
			return fmt.Errorf("insert service %q: %w", svc.name, err)
		}

		for _, line := range svc.consumables {
			if _, err := insert(tx, stats, `
				INSERT INTO service_consumables (service_id, consumable_id, quantity)
				VALUES (?, ?, ?)
			`, serviceID, consumableIDs[line.item], line.quantity); err != nil {
				return fmt.Errorf("link consumable to service %q: %w", svc.name, err)
			}
		}
		for _, line := range svc.materials {
			if _, err := insert(tx, stats, `
				INSERT INTO service_materials (service_id, material_id, quantity)
				VALUES (?, ?, ?)
			`, serviceID, materialIDs[line.item], line.quantity); err != nil {
				return fmt.Errorf("link lab material to service %q: %w", svc.name, err)
			}
		}
		for _, line := range svc.equipment {
			if _, err := insert(tx, stats, `
				INSERT INTO service_equipment (service_id, equipment_id, hours_used)
				VALUES (?, ?, ?)
			`, serviceID, equipmentIDs[line.item], line.quantity); err != nil {
				return fmt.Errorf("link equipment to service %q: %w", svc.name, err)
			}
		}
	}

	return nil
}

func insert(tx *sql.Tx, stats *Stats, query string, args ...any) (int64, error) {
	res, err := tx.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stats.Inserts++
	return id, nil
}
