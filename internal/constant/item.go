package constant

const (
	// ItemIDGil is the item id of gil in the Item sheet.
	ItemIDGil = 1

	// ItemIDVenture is the item id of the venture token retainers consume.
	ItemIDVenture = 21072

	// StatSlots is how many base parameter slots an item row carries.
	StatSlots = 6

	// FoodBonusSlots is how many bonus slots an ItemFood row carries.
	FoodBonusSlots = 3

	// RecipeIngredientSlots is how many ingredient slots a Recipe row carries.
	RecipeIngredientSlots = 10
)

// FoodItemActionTypes are the ItemAction types whose second data slot points
// at an ItemFood row.
var FoodItemActionTypes = map[int]struct{}{
	844: {},
	845: {},
	846: {},
}
