package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/clinicprice/internal/pricing"
	"github.com/Simplici0/clinicprice/internal/store"
)

const healthTimeout = 2 * time.Second

type settingsRequest struct {
	Currency             string   `json:"currency" validate:"required,max=8"`
	VATPercent           *float64 `json:"vat_percent" validate:"required"`
	DefaultProfitPercent *float64 `json:"default_profit_percent" validate:"required"`
	RoundingNearest      int      `json:"rounding_nearest" validate:"required"`
}

type capacityRequest struct {
	Chairs             *int     `json:"chairs" validate:"required"`
	DaysPerMonth       *float64 `json:"days_per_month" validate:"required"`
	HoursPerDay        *float64 `json:"hours_per_day" validate:"required"`
	UtilizationPercent *float64 `json:"utilization_percent" validate:"required"`
}

type lineRequest struct {
	ItemID          int64    `json:"item_id" validate:"gt=0"`
	Quantity        float64  `json:"quantity"`
	CustomUnitPrice *float64 `json:"custom_unit_price"`
}

type equipmentLineRequest struct {
	EquipmentID int64   `json:"equipment_id" validate:"gt=0"`
	HoursUsed   float64 `json:"hours_used"`
}

// serviceDraft is an unsaved service submitted for a live price preview.
type serviceDraft struct {
	Name                string                 `json:"name" validate:"required"`
	ChairTimeHours      float64                `json:"chair_time_hours"`
	DoctorFeeType       string                 `json:"doctor_fee_type" validate:"required"`
	DoctorHourlyFee     float64                `json:"doctor_hourly_fee"`
	DoctorFixedFee      float64                `json:"doctor_fixed_fee"`
	DoctorPercentage    float64                `json:"doctor_percentage"`
	UseDefaultProfit    bool                   `json:"use_default_profit"`
	CustomProfitPercent *float64               `json:"custom_profit_percent"`
	CurrentPrice        *float64               `json:"current_price"`
	Consumables         []lineRequest          `json:"consumables" validate:"dive"`
	Materials           []lineRequest          `json:"materials" validate:"dive"`
	Equipment           []equipmentLineRequest `json:"equipment" validate:"dive"`
}

func (d serviceDraft) toService() pricing.Service {
	svc := pricing.Service{
		Name:                d.Name,
		ChairTimeHours:      d.ChairTimeHours,
		DoctorFeeType:       pricing.FeeType(d.DoctorFeeType),
		DoctorHourlyFee:     d.DoctorHourlyFee,
		DoctorFixedFee:      d.DoctorFixedFee,
		DoctorPercentage:    d.DoctorPercentage,
		UseDefaultProfit:    d.UseDefaultProfit,
		CustomProfitPercent: d.CustomProfitPercent,
		CurrentPrice:        d.CurrentPrice,
	}
	for _, l := range d.Consumables {
		svc.Consumables = append(svc.Consumables, pricing.ServiceConsumable{
			ConsumableID: l.ItemID, Quantity: l.Quantity, CustomUnitPrice: l.CustomUnitPrice,
		})
	}
	for _, l := range d.Materials {
		svc.Materials = append(svc.Materials, pricing.ServiceMaterial{
			MaterialID: l.ItemID, Quantity: l.Quantity, CustomUnitPrice: l.CustomUnitPrice,
		})
	}
	for _, l := range d.Equipment {
		svc.Equipment = append(svc.Equipment, pricing.ServiceEquipment{
			EquipmentID: l.EquipmentID, HoursUsed: l.HoursUsed,
		})
	}
	return svc
}

type previewRequest struct {
	Service         serviceDraft `json:"service"`
	ChairHourlyRate *float64     `json:"chair_hourly_rate"`
}

type varianceRequest struct {
	RoundedPrice *float64 `json:"rounded_price" validate:"required"`
	CurrentPrice *float64 `json:"current_price"`
}

type servicePriceResponse struct {
	Breakdown    pricing.PriceBreakdown  `json:"breakdown"`
	Variance     *pricing.VarianceResult `json:"variance,omitempty"`
	CategoryName string                  `json:"category_name,omitempty"`
	CurrentPrice *float64                `json:"current_price"`
}

type previewResponse struct {
	Breakdown  pricing.PriceBreakdown  `json:"breakdown"`
	Variance   *pricing.VarianceResult `json:"variance,omitempty"`
	RateSource string                  `json:"rate_source"`
}

type dashboardStats struct {
	Currency        string                   `json:"currency"`
	ServiceCount    int                      `json:"service_count"`
	Overhead        pricing.Overhead         `json:"overhead"`
	EffectiveHours  float64                  `json:"effective_hours"`
	ChairHourlyRate float64                  `json:"chair_hourly_rate"`
	Portfolio       pricing.PortfolioSummary `json:"portfolio"`
	FailedServices  int                      `json:"failed_services"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", "err", err)
		writeRawJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeRawJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	gs, err := s.store.GetSettings(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (s *server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	gs := pricing.GlobalSettings{
		Currency:             req.Currency,
		VATPercent:           *req.VATPercent,
		DefaultProfitPercent: *req.DefaultProfitPercent,
		RoundingNearest:      req.RoundingNearest,
	}
	if err := gs.Validate(); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.store.SaveSettings(r.Context(), gs); err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.logger.Info("global settings updated", "vat_percent", gs.VATPercent, "default_profit_percent", gs.DefaultProfitPercent, "rounding_nearest", gs.RoundingNearest)
	writeJSON(w, http.StatusOK, gs)
}

func (s *server) handleGetCapacity(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCapacity(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handlePutCapacity(w http.ResponseWriter, r *http.Request) {
	var req capacityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c := pricing.Capacity{
		Chairs:             *req.Chairs,
		DaysPerMonth:       *req.DaysPerMonth,
		HoursPerDay:        *req.HoursPerDay,
		UtilizationPercent: *req.UtilizationPercent,
	}
	if err := c.Validate(); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.store.SaveCapacity(r.Context(), c); err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.logger.Info("clinic capacity updated", "chairs", c.Chairs, "utilization_percent", c.UtilizationPercent)
	writeJSON(w, http.StatusOK, c)
}

func (s *server) handleServicePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid service id")
		return
	}

	snap, err := s.store.ServiceSnapshot(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	rec := snap.Services[0]

	b, err := s.computePrice(rec.Service, snap)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	resp := servicePriceResponse{
		Breakdown:    b,
		CategoryName: rec.CategoryName,
		CurrentPrice: rec.CurrentPrice,
	}
	// A stored price of zero or less is treated as unset.
	if v, err := pricing.ClassifyVariance(b.RoundedPrice, rec.CurrentPrice); err == nil {
		resp.Variance = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handlePricePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, err := s.store.PricingInputs(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	svc := req.Service.toService()
	resp := previewResponse{RateSource: "computed"}
	start := time.Now()
	if req.ChairHourlyRate != nil {
		resp.RateSource = "supplied"
		resp.Breakdown, err = pricing.ComputeWithRate(svc, snap.Catalog, snap.Settings, *req.ChairHourlyRate)
		s.metrics.observe(time.Since(start), err)
	} else {
		resp.Breakdown, err = s.computePrice(svc, snap)
	}
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	if svc.CurrentPrice != nil {
		v, err := pricing.ClassifyVariance(resp.Breakdown.RoundedPrice, svc.CurrentPrice)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		resp.Variance = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleVariance(w http.ResponseWriter, r *http.Request) {
	var req varianceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	v, err := pricing.ClassifyVariance(*req.RoundedPrice, req.CurrentPrice)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *server) handlePriceList(w http.ResponseWriter, r *http.Request) {
	list, err := s.loadPriceList(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	overhead, err := pricing.SummarizeOverhead(snap.Catalog)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	hours, err := pricing.EffectiveHours(snap.Capacity)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	rate, err := pricing.ChairHourlyRate(snap.Capacity, overhead.Total)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	list := s.buildPriceList(snap)
	writeJSON(w, http.StatusOK, dashboardStats{
		Currency:        snap.Settings.Currency,
		ServiceCount:    len(snap.Services),
		Overhead:        overhead,
		EffectiveHours:  hours,
		ChairHourlyRate: rate,
		Portfolio:       list.Summary,
		FailedServices:  list.Failed,
	})
}

func (s *server) computePrice(svc pricing.Service, snap store.Snapshot) (pricing.PriceBreakdown, error) {
	start := time.Now()
	b, err := pricing.ComputeServicePrice(svc, snap.Catalog, snap.Settings, snap.Capacity)
	s.metrics.observe(time.Since(start), err)
	return b, err
}
