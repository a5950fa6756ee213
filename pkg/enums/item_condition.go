package enums

import "fmt"

// ItemCondition maps to the item_condition enum in Postgres.
type ItemCondition string

const (
	ItemConditionNewWithTags ItemCondition = "new_with_tags"
	ItemConditionLikeNew     ItemCondition = "like_new"
	ItemConditionGood        ItemCondition = "good"
	ItemConditionFair        ItemCondition = "fair"
)

var validItemConditions = []ItemCondition{
	ItemConditionNewWithTags,
	ItemConditionLikeNew,
	ItemConditionGood,
	ItemConditionFair,
}

func (c ItemCondition) IsValid() bool {
	for _, candidate := range validItemConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCondition converts raw input into ItemCondition.
func ParseItemCondition(value string) (ItemCondition, error) {
	for _, candidate := range validItemConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item condition %q", value)
}
