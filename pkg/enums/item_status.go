package enums

import "fmt"

// ItemStatus maps to the item_status enum in Postgres.
type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusSwapped   ItemStatus = "swapped"
)

var validItemStatuses = []ItemStatus{
	ItemStatusAvailable,
	ItemStatusSwapped,
}

// IsValid reports whether the value matches the canonical item status enum.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
