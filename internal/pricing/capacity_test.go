package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectiveHours(t *testing.T) {
	got, err := EffectiveHours(Capacity{Chairs: 2, DaysPerMonth: 24, HoursPerDay: 8, UtilizationPercent: 80})
	require.NoError(t, err)
	nearlyEqual(t, "effectiveHours", got, 307.2)
}

func TestEffectiveHours_IncreasesInEveryFactor(t *testing.T) {
	base := Capacity{Chairs: 2, DaysPerMonth: 20, HoursPerDay: 6, UtilizationPercent: 50}
	baseHours, err := EffectiveHours(base)
	require.NoError(t, err)

	bumps := map[string]Capacity{
		"chairs":      {Chairs: 3, DaysPerMonth: 20, HoursPerDay: 6, UtilizationPercent: 50},
		"days":        {Chairs: 2, DaysPerMonth: 21, HoursPerDay: 6, UtilizationPercent: 50},
		"hours":       {Chairs: 2, DaysPerMonth: 20, HoursPerDay: 6.5, UtilizationPercent: 50},
		"utilization": {Chairs: 2, DaysPerMonth: 20, HoursPerDay: 6, UtilizationPercent: 51},
	}
	for name, c := range bumps {
		hours, err := EffectiveHours(c)
		require.NoError(t, err, name)
		if hours <= baseHours {
			t.Fatalf("%s: effective hours %v not greater than %v", name, hours, baseHours)
		}
	}
}

func TestEffectiveHours_RejectsNonPositiveFactors(t *testing.T) {
	for name, c := range map[string]Capacity{
		"chairs":           {Chairs: 0, DaysPerMonth: 24, HoursPerDay: 8, UtilizationPercent: 80},
		"days":             {Chairs: 1, DaysPerMonth: 0, HoursPerDay: 8, UtilizationPercent: 80},
		"hours":            {Chairs: 1, DaysPerMonth: 24, HoursPerDay: 0, UtilizationPercent: 80},
		"utilization":      {Chairs: 1, DaysPerMonth: 24, HoursPerDay: 8, UtilizationPercent: 0},
		"over utilization": {Chairs: 1, DaysPerMonth: 24, HoursPerDay: 8, UtilizationPercent: 120},
	} {
		_, err := EffectiveHours(c)
		require.ErrorIs(t, err, ErrInvalidCapacity, name)
		require.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestChairHourlyRate(t *testing.T) {
	rate, err := ChairHourlyRate(Capacity{Chairs: 2, DaysPerMonth: 24, HoursPerDay: 8, UtilizationPercent: 80}, 30720)
	require.NoError(t, err)
	nearlyEqual(t, "chairHourlyRate", rate, 100)
}
