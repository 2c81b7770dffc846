package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnitCost_NestedPackaging(t *testing.T) {
	got, err := UnitCost(Consumable{PackCost: 850, CasesPerPack: 2, UnitsPerCase: 25})
	require.NoError(t, err)
	nearlyEqual(t, "unitCost", got, 17)
}

func TestUnitCost_RoundTripsToPackCost(t *testing.T) {
	for _, c := range []Consumable{
		{PackCost: 180, CasesPerPack: 1, UnitsPerCase: 100},
		{PackCost: 1200, CasesPerPack: 1, UnitsPerCase: 1},
		{PackCost: 99.99, CasesPerPack: 3, UnitsPerCase: 7},
		{PackCost: 0, CasesPerPack: 4, UnitsPerCase: 12},
	} {
		unit, err := UnitCost(c)
		require.NoError(t, err)
		nearlyEqual(t, "round trip", unit*float64(c.CasesPerPack)*float64(c.UnitsPerCase), c.PackCost)
	}
}

func TestUnitCost_ZeroDenominators(t *testing.T) {
	_, err := UnitCost(Consumable{PackCost: 10, CasesPerPack: 0, UnitsPerCase: 5})
	require.ErrorIs(t, err, ErrDivisionByZero)

	_, err = UnitCost(Consumable{PackCost: 10, CasesPerPack: 5, UnitsPerCase: 0})
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestUnitCost_NegativeValues(t *testing.T) {
	_, err := UnitCost(Consumable{PackCost: -1, CasesPerPack: 1, UnitsPerCase: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
