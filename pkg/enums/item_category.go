package enums

import "fmt"

// ItemCategory maps to the item_category enum in Postgres.
type ItemCategory string

const (
	ItemCategoryTops        ItemCategory = "tops"
	ItemCategoryBottoms     ItemCategory = "bottoms"
	ItemCategoryDresses     ItemCategory = "dresses"
	ItemCategoryOuterwear   ItemCategory = "outerwear"
	ItemCategoryAccessories ItemCategory = "accessories"
	ItemCategoryShoes       ItemCategory = "shoes"
)

var validItemCategories = []ItemCategory{
	ItemCategoryTops,
	ItemCategoryBottoms,
	ItemCategoryDresses,
	ItemCategoryOuterwear,
	ItemCategoryAccessories,
	ItemCategoryShoes,
}

func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

func (c ItemCategory) String() string {
	return string(c)
}

// ParseItemCategory converts raw input into ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}
