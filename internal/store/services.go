package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/clinicprice/internal/pricing"
)

// ServiceRecord is a service together with its category label.
type ServiceRecord struct {
	pricing.Service
	CategoryID   *int64 `json:"category_id,omitempty"`
	CategoryName string `json:"category_name"`
}

// listServices loads services and their links. onlyID > 0 restricts the
// result to a single service.
func listServices(ctx context.Context, q querier, onlyID int64) ([]ServiceRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT s.id, s.name, s.category_id, COALESCE(c.name, ''),
			s.chair_time_hours, s.doctor_fee_type, s.doctor_hourly_fee,
			s.doctor_fixed_fee, s.doctor_percentage, s.use_default_profit,
			s.custom_profit_percent, s.current_price
		FROM services s
		LEFT JOIN service_categories c ON c.id = s.category_id
		WHERE (? = 0 OR s.id = ?)
		ORDER BY COALESCE(c.display_order, 0), s.name, s.id
	`, onlyID, onlyID)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}

	items := make([]ServiceRecord, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			rec          ServiceRecord
			categoryID   sql.NullInt64
			feeType      string
			customProfit sql.NullFloat64
			currentPrice sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &categoryID, &rec.CategoryName,
			&rec.ChairTimeHours, &feeType, &rec.DoctorHourlyFee,
			&rec.DoctorFixedFee, &rec.DoctorPercentage, &rec.UseDefaultProfit,
			&customProfit, &currentPrice,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan service: %w", err)
		}
		if categoryID.Valid {
			id := categoryID.Int64
			rec.CategoryID = &id
		}
		rec.DoctorFeeType = pricing.FeeType(feeType)
		rec.CustomProfitPercent = nullableFloat(customProfit)
		rec.CurrentPrice = nullableFloat(currentPrice)
		rec.Consumables = make([]pricing.ServiceConsumable, 0)
		rec.Materials = make([]pricing.ServiceMaterial, 0)
		rec.Equipment = make([]pricing.ServiceEquipment, 0)
		index[rec.ID] = len(items)
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	rows.Close()

	if len(items) == 0 {
		return items, nil
	}
	if err := attachConsumables(ctx, q, onlyID, items, index); err != nil {
		return nil, err
	}
	if err := attachMaterials(ctx, q, onlyID, items, index); err != nil {
		return nil, err
	}
	if err := attachEquipment(ctx, q, onlyID, items, index); err != nil {
		return nil, err
	}
	return items, nil
}

func attachConsumables(ctx context.Context, q querier, onlyID int64, items []ServiceRecord, index map[int64]int) error {
	rows, err := q.QueryContext(ctx, `
		SELECT service_id, consumable_id, quantity, custom_unit_price
		FROM service_consumables
		WHERE (? = 0 OR service_id = ?)
		ORDER BY id
	`, onlyID, onlyID)
	if err != nil {
		return fmt.Errorf("query service consumables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			serviceID int64
			link      pricing.ServiceConsumable
			custom    sql.NullFloat64
		)
		if err := rows.Scan(&serviceID, &link.ConsumableID, &link.Quantity, &custom); err != nil {
			return fmt.Errorf("scan service consumable: %w", err)
		}
		link.CustomUnitPrice = nullableFloat(custom)
		if i, ok := index[serviceID]; ok {
			items[i].Consumables = append(items[i].Consumables, link)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate service consumables: %w", err)
	}
	return nil
}

func attachMaterials(ctx context.Context, q querier, onlyID int64, items []ServiceRecord, index map[int64]int) error {
	rows, err := q.QueryContext(ctx, `
		SELECT service_id, material_id, quantity, custom_unit_price
		FROM service_materials
		WHERE (? = 0 OR service_id = ?)
		ORDER BY id
	`, onlyID, onlyID)
	if err != nil {
		return fmt.Errorf("query service materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			serviceID int64
			link      pricing.ServiceMaterial
			custom    sql.NullFloat64
		)
		if err := rows.Scan(&serviceID, &link.MaterialID, &link.Quantity, &custom); err != nil {
			return fmt.Errorf("scan service material: %w", err)
		}
		link.CustomUnitPrice = nullableFloat(custom)
		if i, ok := index[serviceID]; ok {
			items[i].Materials = append(items[i].Materials, link)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate service materials: %w", err)
	}
	return nil
}

func attachEquipment(ctx context.Context, q querier, onlyID int64, items []ServiceRecord, index map[int64]int) error {
	rows, err := q.QueryContext(ctx, `
		SELECT service_id, equipment_id, hours_used
		FROM service_equipment
		WHERE (? = 0 OR service_id = ?)
		ORDER BY id
	`, onlyID, onlyID)
	if err != nil {
		return fmt.Errorf("query service equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			serviceID int64
			link      pricing.ServiceEquipment
		)
		if err := rows.Scan(&serviceID, &link.EquipmentID, &link.HoursUsed); err != nil {
			return fmt.Errorf("scan service equipment: %w", err)
		}
		if i, ok := index[serviceID]; ok {
			items[i].Equipment = append(items[i].Equipment, link)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate service equipment: %w", err)
	}
	return nil
}
