package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoctorFee_Models(t *testing.T) {
	hourly, err := DoctorFee(Service{ChairTimeHours: 1.5, DoctorFeeType: FeeHourly, DoctorHourlyFee: 400, DoctorFixedFee: 50})
	require.NoError(t, err)
	nearlyEqual(t, "hourly", hourly.Amount, 600)

	fixed, err := DoctorFee(Service{ChairTimeHours: 1.5, DoctorFeeType: FeeFixed, DoctorFixedFee: 750, DoctorHourlyFee: 400})
	require.NoError(t, err)
	nearlyEqual(t, "fixed", fixed.Amount, 750)

	pct, err := DoctorFee(Service{ChairTimeHours: 1.5, DoctorFeeType: FeePercentage, DoctorPercentage: 35, DoctorFixedFee: 750})
	require.NoError(t, err)
	nearlyEqual(t, "percentage amount", pct.Amount, 0)
	nearlyEqual(t, "percentage share", pct.PercentOfPrice, 35)
}

func TestDoctorFee_UnknownType(t *testing.T) {
	_, err := DoctorFee(Service{DoctorFeeType: ""})
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
