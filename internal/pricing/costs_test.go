package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeOverhead_SkipsExcludedRowsAndPerHourEquipment(t *testing.T) {
	catalog := Catalog{
		FixedCosts: []FixedCost{
			{ID: 1, Category: "Rent", MonthlyAmount: 20000, Included: true},
			{ID: 2, Category: "Marketing", MonthlyAmount: 7000, Included: false},
		},
		Salaries: []Salary{
			{ID: 1, Role: "Receptionist", MonthlySalary: 8000, Included: true},
			{ID: 2, Role: "Consultant", MonthlySalary: 15000, Included: false},
		},
		Equipment: []Equipment{
			{ID: 1, Name: "Chair", PurchaseCost: 120000, LifeYears: 10, AllocationType: AllocationFixed},
			{ID: 2, Name: "X-Ray", PurchaseCost: 80000, LifeYears: 8, AllocationType: AllocationPerHour, MonthlyUsageHours: 40},
		},
	}

	o, err := SummarizeOverhead(catalog)
	require.NoError(t, err)
	nearlyEqual(t, "fixedCosts", o.FixedCosts, 20000)
	nearlyEqual(t, "salaries", o.Salaries, 8000)
	nearlyEqual(t, "fixedDepreciation", o.FixedDepreciation, 1000)
	nearlyEqual(t, "total", o.Total, 29000)
}

func TestSummarizeOverhead_UnknownAllocation(t *testing.T) {
	_, err := SummarizeOverhead(Catalog{Equipment: []Equipment{{ID: 1, LifeYears: 1, AllocationType: "leased"}}})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSummarizeOverhead_InvalidLife(t *testing.T) {
	_, err := SummarizeOverhead(Catalog{Equipment: []Equipment{{ID: 1, PurchaseCost: 10, LifeYears: 0, AllocationType: AllocationFixed}}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPerHourCost(t *testing.T) {
	rate, err := PerHourCost(Equipment{PurchaseCost: 80000, LifeYears: 8, AllocationType: AllocationPerHour, MonthlyUsageHours: 40})
	require.NoError(t, err)
	nearlyEqual(t, "perHourCost", rate, 80000.0/96/40)

	_, err = PerHourCost(Equipment{PurchaseCost: 80000, LifeYears: 8, AllocationType: AllocationPerHour})
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = PerHourCost(Equipment{PurchaseCost: 80000, LifeYears: 8, AllocationType: AllocationFixed, MonthlyUsageHours: 40})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestMaterialsCost_CustomPriceOverridesWholeLine(t *testing.T) {
	catalog := Catalog{
		Consumables: []Consumable{
			{ID: 1, PackCost: 180, CasesPerPack: 1, UnitsPerCase: 100},
			{ID: 2, PackCost: 850, CasesPerPack: 1, UnitsPerCase: 50},
		},
		LabMaterials: []LabMaterial{{ID: 9, UnitCost: 2200}},
	}
	service := Service{
		Consumables: []ServiceConsumable{
			{ConsumableID: 1, Quantity: 4},
			{ConsumableID: 2, Quantity: 2, CustomUnitPrice: ptr(20)},
		},
		Materials: []ServiceMaterial{{MaterialID: 9, Quantity: 1, CustomUnitPrice: ptr(0)}},
	}

	got, err := MaterialsCost(service, catalog)
	require.NoError(t, err)
	nearlyEqual(t, "materialsCost", got, 4*1.8+2*20)
}

func TestMaterialsCost_UnknownReferences(t *testing.T) {
	_, err := MaterialsCost(Service{Consumables: []ServiceConsumable{{ConsumableID: 3, Quantity: 1}}}, Catalog{})
	require.ErrorIs(t, err, ErrUnknownReference)

	_, err = MaterialsCost(Service{Materials: []ServiceMaterial{{MaterialID: 3, Quantity: 1}}}, Catalog{})
	require.ErrorIs(t, err, ErrUnknownReference)
}

func TestEquipmentCost(t *testing.T) {
	catalog := Catalog{Equipment: []Equipment{
		{ID: 1, PurchaseCost: 9600, LifeYears: 1, AllocationType: AllocationPerHour, MonthlyUsageHours: 80},
		{ID: 2, PurchaseCost: 2400, LifeYears: 2, AllocationType: AllocationPerHour, MonthlyUsageHours: 10},
	}}
	service := Service{Equipment: []ServiceEquipment{{EquipmentID: 1, HoursUsed: 0.5}, {EquipmentID: 2, HoursUsed: 2}}}

	got, err := EquipmentCost(service, catalog)
	require.NoError(t, err)
	nearlyEqual(t, "equipmentCost", got, 0.5*10+2*10)

	_, err = EquipmentCost(Service{Equipment: []ServiceEquipment{{EquipmentID: 5, HoursUsed: 1}}}, catalog)
	require.ErrorIs(t, err, ErrUnknownReference)
}
