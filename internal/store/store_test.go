package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/clinicprice/internal/db"
	"github.com/Simplici0/clinicprice/internal/migrations"
	"github.com/Simplici0/clinicprice/internal/pricing"
	"github.com/Simplici0/clinicprice/internal/seed"
)

func newSeededStore(t *testing.T, starter bool) *Store {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = migrations.Up(context.Background(), database, "../../migrations")
	require.NoError(t, err)
	_, err = seed.Run(database, seed.Config{StarterData: starter})
	require.NoError(t, err)
	return New(database)
}

func findService(t *testing.T, services []ServiceRecord, name string) ServiceRecord {
	t.Helper()
	for _, s := range services {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("service %q not found", name)
	return ServiceRecord{}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, false)
	ctx := context.Background()

	gs, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing.GlobalSettings{Currency: "EGP", VATPercent: 0, DefaultProfitPercent: 40, RoundingNearest: 5}, gs)

	gs.VATPercent = 14
	gs.RoundingNearest = 10
	require.NoError(t, st.SaveSettings(ctx, gs))

	got, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, gs, got)
}

func TestSaveSettingsRejectsUnknownRoundingStep(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, false)

	err := st.SaveSettings(context.Background(), pricing.GlobalSettings{Currency: "EGP", RoundingNearest: 7})
	require.Error(t, err)
}

func TestCapacityRoundTrip(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, false)
	ctx := context.Background()

	c, err := st.GetCapacity(ctx)
	require.NoError(t, err)
	assert.Equal(t, pricing.Capacity{Chairs: 1, DaysPerMonth: 24, HoursPerDay: 8, UtilizationPercent: 80}, c)

	c.Chairs = 2
	require.NoError(t, st.SaveCapacity(ctx, c))
	got, err := st.GetCapacity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Chairs)
}

func TestPricingInputsReadStarterCatalog(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, true)

	snap, err := st.PricingInputs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Services)
	cat := snap.Catalog
	assert.Len(t, cat.Consumables, 10)
	assert.Len(t, cat.LabMaterials, 5)
	assert.Len(t, cat.Equipment, 3)
	assert.Len(t, cat.FixedCosts, 3)
	assert.Len(t, cat.Salaries, 3)

	var perHour int
	for _, e := range cat.Equipment {
		if e.AllocationType == pricing.AllocationPerHour {
			perHour++
			assert.Equal(t, 40.0, e.MonthlyUsageHours)
		}
	}
	assert.Equal(t, 1, perHour)

	overhead, err := pricing.SummarizeOverhead(cat)
	require.NoError(t, err)
	assert.InDelta(t, 50750, overhead.Total, 1e-6)
}

func TestServiceSnapshotLoadsLinks(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, true)
	ctx := context.Background()

	all, err := st.Snapshot(ctx)
	require.NoError(t, err)
	services := all.Services
	require.Len(t, services, 5)

	crown := findService(t, services, "Zirconia Crown")
	one, err := st.ServiceSnapshot(ctx, crown.ID)
	require.NoError(t, err)
	require.Len(t, one.Services, 1)
	got := one.Services[0]
	assert.Equal(t, "Prosthodontics", got.CategoryName)
	assert.Equal(t, pricing.FeeHourly, got.DoctorFeeType)
	assert.Len(t, got.Consumables, 5)
	assert.Len(t, got.Materials, 1)
	assert.Len(t, got.Equipment, 1)
	require.NotNil(t, got.CurrentPrice)
	assert.Equal(t, 6000.0, *got.CurrentPrice)
	assert.Nil(t, got.CustomProfitPercent)

	whitening := findService(t, services, "Teeth Whitening")
	assert.Empty(t, whitening.Materials)
	assert.Empty(t, whitening.Equipment)
}

func TestServiceSnapshotNotFound(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, false)

	for _, id := range []int64{999, 0, -1} {
		_, err := st.ServiceSnapshot(context.Background(), id)
		require.True(t, errors.Is(err, ErrNotFound), "id %d", id)
	}
}

func TestSnapshotPricesStarterRootCanal(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, true)

	snap, err := st.Snapshot(context.Background())
	require.NoError(t, err)

	rootCanal := findService(t, snap.Services, "Root Canal Treatment")
	b, err := pricing.ComputeServicePrice(rootCanal.Service, snap.Catalog, snap.Settings, snap.Capacity)
	require.NoError(t, err)

	assert.InDelta(t, 153.6, b.EffectiveHours, 1e-9)
	assert.InDelta(t, 50750/153.6, b.ChairHourlyRate, 1e-6)
	assert.InDelta(t, 1600, b.DoctorFee, 1e-9)
	assert.InDelta(t, 72, b.MaterialsCost, 1e-6)
	assert.InDelta(t, 80000.0/8/12/40*0.25, b.EquipmentCost, 1e-6)
	assert.Equal(t, 3275.0, b.RoundedPrice)

	v, err := pricing.ClassifyVariance(b.RoundedPrice, rootCanal.CurrentPrice)
	require.NoError(t, err)
	assert.Equal(t, pricing.ZoneUnderpriced, v.Zone)
	assert.False(t, math.IsNaN(v.VariancePercent))
}

func TestServiceSnapshotScopes(t *testing.T) {
	t.Parallel()
	st := newSeededStore(t, true)
	ctx := context.Background()

	all, err := st.Snapshot(ctx)
	require.NoError(t, err)
	crown := findService(t, all.Services, "Zirconia Crown")

	one, err := st.ServiceSnapshot(ctx, crown.ID)
	require.NoError(t, err)
	require.Len(t, one.Services, 1)
	assert.Equal(t, crown.ID, one.Services[0].ID)
	assert.Len(t, one.Catalog.Consumables, 10)

	inputs, err := st.PricingInputs(ctx)
	require.NoError(t, err)
	assert.Empty(t, inputs.Services)
	assert.Equal(t, all.Settings, inputs.Settings)

	_, err = st.ServiceSnapshot(ctx, 12345)
	require.ErrorIs(t, err, ErrNotFound)
}
