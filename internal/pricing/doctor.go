package pricing

import "fmt"

// DoctorFeeShare is a resolved doctor compensation. Exactly one field is
// meaningful: Amount for hourly and fixed fees, PercentOfPrice for
// percentage fees, which can only be settled once the price is solved.
// The percentage applies to the solved price before VAT and rounding.
type DoctorFeeShare struct {
	Type           FeeType
	Amount         float64
	PercentOfPrice float64
}

// DoctorFee resolves the doctor compensation model of a service. Fields that
// do not belong to the service's fee type are ignored.
func DoctorFee(s Service) (DoctorFeeShare, error) {
	switch s.DoctorFeeType {
	case FeeHourly:
		if s.DoctorHourlyFee < 0 {
			return DoctorFeeShare{}, fmt.Errorf("doctor hourly fee must be >= 0: %w", ErrInvalidInput)
		}
		return DoctorFeeShare{Type: FeeHourly, Amount: s.DoctorHourlyFee * s.ChairTimeHours}, nil
	case FeeFixed:
		if s.DoctorFixedFee < 0 {
			return DoctorFeeShare{}, fmt.Errorf("doctor fixed fee must be >= 0: %w", ErrInvalidInput)
		}
		return DoctorFeeShare{Type: FeeFixed, Amount: s.DoctorFixedFee}, nil
	case FeePercentage:
		if s.DoctorPercentage < 0 {
			return DoctorFeeShare{}, fmt.Errorf("doctor percentage must be >= 0: %w", ErrInvalidInput)
		}
		return DoctorFeeShare{Type: FeePercentage, PercentOfPrice: s.DoctorPercentage}, nil
	default:
		return DoctorFeeShare{}, fmt.Errorf("unknown doctor fee type %q: %w", s.DoctorFeeType, ErrInvalidConfiguration)
	}
}
