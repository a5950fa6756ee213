package enums

import "fmt"

// ValuationStatus records how a listing's point value was determined.
type ValuationStatus string

const (
	ValuationStatusAuto     ValuationStatus = "auto"
	ValuationStatusManual   ValuationStatus = "manual"
	ValuationStatusUnvalued ValuationStatus = "unvalued"
)

var validValuationStatuses = []ValuationStatus{
	ValuationStatusAuto,
	ValuationStatusManual,
	ValuationStatusUnvalued,
}

func (s ValuationStatus) IsValid() bool {
	for _, candidate := range validValuationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseValuationStatus converts raw input into ValuationStatus.
func ParseValuationStatus(value string) (ValuationStatus, error) {
	for _, candidate := range validValuationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid valuation status %q", value)
}
