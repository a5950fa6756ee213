package enums

import "fmt"

// SwapStatus maps to the swap_status enum in Postgres. Pending is the only
// non-terminal state; accepted and rejected are final.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusAccepted SwapStatus = "accepted"
	SwapStatusRejected SwapStatus = "rejected"
)

var validSwapStatuses = []SwapStatus{
	SwapStatusPending,
	SwapStatusAccepted,
	SwapStatusRejected,
}

func (s SwapStatus) IsValid() bool {
	for _, candidate := range validSwapStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the proposal can no longer change state.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected
}

// ParseSwapStatus converts raw input into SwapStatus.
func ParseSwapStatus(value string) (SwapStatus, error) {
	for _, candidate := range validSwapStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid swap status %q", value)
}
