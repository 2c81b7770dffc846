package pricing

// PortfolioEntry pairs a computed breakdown with the price currently charged.
type PortfolioEntry struct {
	Breakdown    PriceBreakdown
	CurrentPrice *float64
}

// PortfolioSummary rolls up the health of a clinic price list.
type PortfolioSummary struct {
	TotalServices    int     `json:"total_services"`
	Underpriced      int     `json:"underpriced"`
	Optimal          int     `json:"optimal"`
	Overpriced       int     `json:"overpriced"`
	Unclassified     int     `json:"unclassified"`
	PotentialRevenue float64 `json:"potential_revenue"`
	Healthy          bool    `json:"healthy"`
}

// AggregatePortfolio folds entries into a summary. Entries whose current
// price is missing or not positive count as unclassified.
func AggregatePortfolio(entries []PortfolioEntry) PortfolioSummary {
	summary := PortfolioSummary{TotalServices: len(entries)}
	for _, e := range entries {
		result, err := ClassifyVariance(e.Breakdown.RoundedPrice, e.CurrentPrice)
		if err != nil {
			summary.Unclassified++
			continue
		}
		switch result.Zone {
		case ZoneUnderpriced:
			summary.Underpriced++
			summary.PotentialRevenue += result.Variance
		case ZoneOptimal:
			summary.Optimal++
		case ZoneOverpriced:
			summary.Overpriced++
		default:
			summary.Unclassified++
		}
	}
	summary.Healthy = summary.Underpriced == 0
	return summary
}
