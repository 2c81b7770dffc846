package main

import (
	"context"

	"github.com/Simplici0/clinicprice/internal/pricing"
	"github.com/Simplici0/clinicprice/internal/store"
)

type priceListItem struct {
	ServiceID    int64                   `json:"service_id"`
	ServiceName  string                  `json:"service_name"`
	CategoryName string                  `json:"category_name,omitempty"`
	CurrentPrice *float64                `json:"current_price"`
	Breakdown    *pricing.PriceBreakdown `json:"breakdown,omitempty"`
	Variance     *pricing.VarianceResult `json:"variance,omitempty"`
	ErrorKind    string                  `json:"error_kind,omitempty"`
	Error        string                  `json:"error,omitempty"`
}

type priceList struct {
	Currency string                   `json:"currency"`
	Items    []priceListItem          `json:"items"`
	Summary  pricing.PortfolioSummary `json:"summary"`
	Failed   int                      `json:"failed"`
}

func (s *server) loadPriceList(ctx context.Context) (priceList, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return priceList{}, err
	}
	return s.buildPriceList(snap), nil
}

// buildPriceList prices every service of snap. A service that cannot be
// priced is listed with its error kind and left out of the summary.
func (s *server) buildPriceList(snap store.Snapshot) priceList {
	list := priceList{
		Currency: snap.Settings.Currency,
		Items:    make([]priceListItem, 0, len(snap.Services)),
	}
	entries := make([]pricing.PortfolioEntry, 0, len(snap.Services))

	for _, rec := range snap.Services {
		item := priceListItem{
			ServiceID:    rec.ID,
			ServiceName:  rec.Name,
			CategoryName: rec.CategoryName,
			CurrentPrice: rec.CurrentPrice,
		}

		b, err := s.computePrice(rec.Service, snap)
		if err != nil {
			s.logger.Warn("service price failed", "service_id", rec.ID, "err", err)
			item.ErrorKind = pricing.ErrorKind(err)
			item.Error = err.Error()
			list.Items = append(list.Items, item)
			list.Failed++
			continue
		}
		item.Breakdown = &b
		if v, err := pricing.ClassifyVariance(b.RoundedPrice, rec.CurrentPrice); err == nil {
			item.Variance = &v
		}

		list.Items = append(list.Items, item)
		entries = append(entries, pricing.PortfolioEntry{Breakdown: b, CurrentPrice: rec.CurrentPrice})
	}

	list.Summary = pricing.AggregatePortfolio(entries)
	s.metrics.underpriced.Set(float64(list.Summary.Underpriced))
	return list
}
