package pricing

import (
	"fmt"
	"math"
)

// Zone is the price-health classification of a service.
type Zone string

const (
	ZoneNone        Zone = "none"
	ZoneOptimal     Zone = "optimal"
	ZoneUnderpriced Zone = "underpriced"
	ZoneOverpriced  Zone = "overpriced"
)

// OptimalBandPercent is the inclusive half-width of the optimal zone.
const OptimalBandPercent = 5.0

const varianceEpsilon = 1e-9

// VarianceResult compares a recommended price with the price currently charged.
type VarianceResult struct {
	Zone            Zone    `json:"zone"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variance_percent"`
}

// ClassifyVariance assigns a health zone to roundedPrice against currentPrice.
// A nil currentPrice yields ZoneNone.
func ClassifyVariance(roundedPrice float64, currentPrice *float64) (VarianceResult, error) {
	if currentPrice == nil {
		return VarianceResult{Zone: ZoneNone}, nil
	}
	current := *currentPrice
	if current <= 0 {
		return VarianceResult{}, fmt.Errorf("current price must be > 0, got %v: %w", current, ErrInvalidInput)
	}

	variance := roundedPrice - current
	percent := variance * 100.0 / current

	var zone Zone
	switch {
	case math.Abs(percent) <= OptimalBandPercent+varianceEpsilon:
		zone = ZoneOptimal
	case percent > 0:
		zone = ZoneUnderpriced
	default:
		zone = ZoneOverpriced
	}
	return VarianceResult{Zone: zone, Variance: variance, VariancePercent: percent}, nil
}
