package pricing

import (
	"fmt"
	"math"
)

// roundingEpsilon absorbs binary representation error at the half boundary.
// It is relative to x/step, so the slack in currency units tracks the
// magnitude of x and not the size of the rounding step.
const roundingEpsilon = 1e-12

// ComputeServicePrice derives the recommended price of a service from a fresh
// catalog snapshot, the clinic settings and its capacity.
func ComputeServicePrice(s Service, c Catalog, settings GlobalSettings, capacity Capacity) (PriceBreakdown, error) {
	if err := settings.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	overhead, err := SummarizeOverhead(c)
	if err != nil {
		return PriceBreakdown{}, err
	}
	hours, err := EffectiveHours(capacity)
	if err != nil {
		return PriceBreakdown{}, err
	}
	rate, err := ChairHourlyRate(capacity, overhead.Total)
	if err != nil {
		return PriceBreakdown{}, err
	}

	b, err := compose(s, indexCatalog(c), settings, rate)
	if err != nil {
		return PriceBreakdown{}, err
	}
	b.EffectiveHours = hours
	return b, nil
}

// ComputeWithRate composes a price from a caller-supplied chair hourly rate.
// It backs live previews; EffectiveHours is left at zero.
func ComputeWithRate(s Service, c Catalog, settings GlobalSettings, chairHourlyRate float64) (PriceBreakdown, error) {
	if err := settings.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	if chairHourlyRate < 0 || math.IsNaN(chairHourlyRate) || math.IsInf(chairHourlyRate, 0) {
		return PriceBreakdown{}, fmt.Errorf("chair hourly rate %v must be a finite value >= 0: %w", chairHourlyRate, ErrInvalidInput)
	}
	return compose(s, indexCatalog(c), settings, chairHourlyRate)
}

// ProfitPercent returns the margin that applies to a service.
func ProfitPercent(s Service, settings GlobalSettings) (float64, error) {
	if s.UseDefaultProfit {
		return settings.DefaultProfitPercent, nil
	}
	if s.CustomProfitPercent == nil {
		return 0, fmt.Errorf("service %d uses a custom profit but none is set: %w", s.ID, ErrInvalidInput)
	}
	if *s.CustomProfitPercent < 0 {
		return 0, fmt.Errorf("custom profit percent must be >= 0, got %v: %w", *s.CustomProfitPercent, ErrInvalidInput)
	}
	return *s.CustomProfitPercent, nil
}

func compose(s Service, idx catalogIndex, settings GlobalSettings, rate float64) (PriceBreakdown, error) {
	if s.ChairTimeHours <= 0 {
		return PriceBreakdown{}, fmt.Errorf("service %d chair time must be > 0: %w", s.ID, ErrInvalidInput)
	}
	fee, err := DoctorFee(s)
	if err != nil {
		return PriceBreakdown{}, err
	}
	profitPercent, err := ProfitPercent(s, settings)
	if err != nil {
		return PriceBreakdown{}, err
	}
	materials, err := materialsCost(s, idx)
	if err != nil {
		return PriceBreakdown{}, err
	}
	equipment, err := equipmentCost(s, idx)
	if err != nil {
		return PriceBreakdown{}, err
	}

	chairTimeCost := rate * s.ChairTimeHours
	baseCost := chairTimeCost + equipment + materials

	var doctorFee, profitAmount, priceBeforeVAT float64
	if fee.Type == FeePercentage {
		share := profitPercent + fee.PercentOfPrice
		if share >= 100 {
			return PriceBreakdown{}, fmt.Errorf("profit %v%% + doctor %v%% >= 100%%: %w", profitPercent, fee.PercentOfPrice, ErrUnsatisfiableMargin)
		}
		priceBeforeVAT = baseCost / (1.0 - share/100.0)
		doctorFee = priceBeforeVAT * fee.PercentOfPrice / 100.0
		profitAmount = priceBeforeVAT * profitPercent / 100.0
	} else {
		doctorFee = fee.Amount
		profitAmount = (baseCost + doctorFee) * profitPercent / 100.0
		priceBeforeVAT = baseCost + doctorFee + profitAmount
	}

	vatAmount := priceBeforeVAT * settings.VATPercent / 100.0
	finalPrice := priceBeforeVAT + vatAmount
	rounded, err := RoundToNearest(finalPrice, settings.RoundingNearest)
	if err != nil {
		return PriceBreakdown{}, err
	}

	return PriceBreakdown{
		ServiceID:       s.ID,
		ServiceName:     s.Name,
		Currency:        settings.Currency,
		DoctorFeeType:   fee.Type,
		ChairHourlyRate: rate,
		ChairTimeCost:   chairTimeCost,
		DoctorFee:       doctorFee,
		EquipmentCost:   equipment,
		MaterialsCost:   materials,
		TotalCost:       baseCost + doctorFee,
		ProfitPercent:   profitPercent,
		ProfitAmount:    profitAmount,
		PriceBeforeVAT:  priceBeforeVAT,
		VATPercent:      settings.VATPercent,
		VATAmount:       vatAmount,
		FinalPrice:      finalPrice,
		RoundedPrice:    rounded,
	}, nil
}

// RoundToNearest rounds x half-up to a multiple of nearest.
func RoundToNearest(x float64, nearest int) (float64, error) {
	if !validRoundingStep(nearest) {
		return 0, fmt.Errorf("rounding step %d not in %v: %w", nearest, RoundingSteps, ErrInvalidConfiguration)
	}
	step := float64(nearest)
	q := x / step
	return math.Floor(q+0.5+roundingEpsilon*math.Max(1, math.Abs(q))) * step, nil
}
