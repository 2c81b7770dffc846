package pricing

import "fmt"

// FeeType selects how the treating doctor is compensated for a service.
type FeeType string

const (
	FeeHourly     FeeType = "hourly"
	FeeFixed      FeeType = "fixed"
	FeePercentage FeeType = "percentage"
)

// AllocationType selects how equipment depreciation is charged.
type AllocationType string

const (
	AllocationFixed   AllocationType = "fixed"
	AllocationPerHour AllocationType = "per-hour"
)

// RoundingSteps lists the accepted values of GlobalSettings.RoundingNearest.
var RoundingSteps = []int{1, 5, 10, 50, 100}

// GlobalSettings holds clinic-wide pricing parameters.
type GlobalSettings struct {
	Currency             string  `json:"currency"`
	VATPercent           float64 `json:"vat_percent"`
	DefaultProfitPercent float64 `json:"default_profit_percent"`
	RoundingNearest      int     `json:"rounding_nearest"`
}

// Validate checks ranges and the rounding step.
func (g GlobalSettings) Validate() error {
	if !validRoundingStep(g.RoundingNearest) {
		return fmt.Errorf("rounding_nearest %d not in %v: %w", g.RoundingNearest, RoundingSteps, ErrInvalidConfiguration)
	}
	if g.VATPercent < 0 || g.VATPercent > 100 {
		return fmt.Errorf("vat_percent %v must be between 0 and 100: %w", g.VATPercent, ErrInvalidInput)
	}
	if g.DefaultProfitPercent < 0 {
		return fmt.Errorf("default_profit_percent %v must be >= 0: %w", g.DefaultProfitPercent, ErrInvalidInput)
	}
	return nil
}

func validRoundingStep(n int) bool {
	for _, step := range RoundingSteps {
		if n == step {
			return true
		}
	}
	return false
}

// Capacity describes how many chair-hours the clinic can bill in a month.
type Capacity struct {
	Chairs             int     `json:"chairs"`
	DaysPerMonth       float64 `json:"days_per_month"`
	HoursPerDay        float64 `json:"hours_per_day"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// FixedCost is a recurring monthly clinic expense.
type FixedCost struct {
	ID            int64   `json:"id"`
	Category      string  `json:"category"`
	MonthlyAmount float64 `json:"monthly_amount"`
	Included      bool    `json:"included"`
}

// Salary is a monthly staff cost blended into overhead.
type Salary struct {
	ID            int64   `json:"id"`
	Role          string  `json:"role"`
	MonthlySalary float64 `json:"monthly_salary"`
	Included      bool    `json:"included"`
}

// Equipment is a depreciating clinic asset.
type Equipment struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	PurchaseCost      float64        `json:"purchase_cost"`
	LifeYears         int            `json:"life_years"`
	AllocationType    AllocationType `json:"allocation_type"`
	MonthlyUsageHours float64        `json:"monthly_usage_hours"`
}

// Consumable is a stock item bought in packs of cases of units.
type Consumable struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PackCost     float64 `json:"pack_cost"`
	CasesPerPack int     `json:"cases_per_pack"`
	UnitsPerCase int     `json:"units_per_case"`
}

// LabMaterial is an externally fabricated item billed per unit.
type LabMaterial struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LabName  string  `json:"lab_name"`
	UnitCost float64 `json:"unit_cost"`
}

// ServiceConsumable links a consumable to a service.
// CustomUnitPrice, when set, replaces the packaging-derived unit cost.
type ServiceConsumable struct {
	ConsumableID    int64    `json:"consumable_id"`
	Quantity        float64  `json:"quantity"`
	CustomUnitPrice *float64 `json:"custom_unit_price,omitempty"`
}

// ServiceMaterial links a lab material to a service.
type ServiceMaterial struct {
	MaterialID      int64    `json:"material_id"`
	Quantity        float64  `json:"quantity"`
	CustomUnitPrice *float64 `json:"custom_unit_price,omitempty"`
}

// ServiceEquipment charges per-hour equipment to a service.
type ServiceEquipment struct {
	EquipmentID int64   `json:"equipment_id"`
	HoursUsed   float64 `json:"hours_used"`
}

// Service is a billable treatment and everything needed to cost it.
type Service struct {
	ID                  int64               `json:"id"`
	Name                string              `json:"name"`
	ChairTimeHours      float64             `json:"chair_time_hours"`
	DoctorFeeType       FeeType             `json:"doctor_fee_type"`
	DoctorHourlyFee     float64             `json:"doctor_hourly_fee"`
	DoctorFixedFee      float64             `json:"doctor_fixed_fee"`
	DoctorPercentage    float64             `json:"doctor_percentage"`
	UseDefaultProfit    bool                `json:"use_default_profit"`
	CustomProfitPercent *float64            `json:"custom_profit_percent,omitempty"`
	CurrentPrice        *float64            `json:"current_price,omitempty"`
	Consumables         []ServiceConsumable `json:"consumables"`
	Materials           []ServiceMaterial   `json:"materials"`
	Equipment           []ServiceEquipment  `json:"equipment"`
}

// Catalog is an immutable snapshot of clinic master data used to resolve
// service references and monthly overhead.
type Catalog struct {
	Consumables  []Consumable  `json:"consumables"`
	LabMaterials []LabMaterial `json:"lab_materials"`
	Equipment    []Equipment   `json:"equipment"`
	FixedCosts   []FixedCost   `json:"fixed_costs"`
	Salaries     []Salary      `json:"salaries"`
}

// PriceBreakdown contains every intermediate value of a price computation.
type PriceBreakdown struct {
	ServiceID       int64   `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	Currency        string  `json:"currency"`
	DoctorFeeType   FeeType `json:"doctor_fee_type"`
	EffectiveHours  float64 `json:"effective_hours"`
	ChairHourlyRate float64 `json:"chair_hourly_rate"`
	ChairTimeCost   float64 `json:"chair_time_cost"`
	DoctorFee       float64 `json:"doctor_fee"`
	EquipmentCost   float64 `json:"equipment_cost"`
	MaterialsCost   float64 `json:"materials_cost"`
	TotalCost       float64 `json:"total_cost"`
	ProfitPercent   float64 `json:"profit_percent"`
	ProfitAmount    float64 `json:"profit_amount"`
	PriceBeforeVAT  float64 `json:"price_before_vat"`
	VATPercent      float64 `json:"vat_percent"`
	VATAmount       float64 `json:"vat_amount"`
	FinalPrice      float64 `json:"final_price"`
	RoundedPrice    float64 `json:"rounded_price"`
}

type catalogIndex struct {
	consumables map[int64]Consumable
	materials   map[int64]LabMaterial
	equipment   map[int64]Equipment
}

func indexCatalog(c Catalog) catalogIndex {
	idx := catalogIndex{
		consumables: make(map[int64]Consumable, len(c.Consumables)),
		materials:   make(map[int64]LabMaterial, len(c.LabMaterials)),
		equipment:   make(map[int64]Equipment, len(c.Equipment)),
	}
	for _, item := range c.Consumables {
		idx.consumables[item.ID] = item
	}
	for _, item := range c.LabMaterials {
		idx.materials[item.ID] = item
	}
	for _, item := range c.Equipment {
		idx.equipment[item.ID] = item
	}
	return idx
}
