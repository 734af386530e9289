package production

import "fmt"

// Ingredient is one line of a recipe: Quantity units of Item consumed per craft cycle
type Ingredient struct {
	Item     string
	Quantity float64
}

// Item is a craftable or raw good.
//
// Raw materials and fluids have an empty recipe. Byproduct-only items such as
// crude oil also carry a zero YieldCount and CraftTime.
type Item struct {
	// Name identifies the item in the catalog (e.g. "iron-plate")
	Name string

	// Producer names the machine kind that crafts or extracts the item (empty if none)
	Producer string

	// Recipe lists the inputs of one craft cycle, in catalog order
	Recipe []Ingredient

	// YieldCount is the number of units one craft cycle produces.
	// E.g. transport belts yield 2 because 1 iron plate + 1 gear wheel makes 2 belts.
	YieldCount int

	// CraftTime is the duration of one craft cycle in seconds at craft speed 1
	CraftTime float64

	// BoostExempt marks recipes whose yield productivity modules cannot amplify
	BoostExempt bool
}

// IsRaw returns true if the item has no recipe to expand
func (i Item) IsRaw() bool {
	return len(i.Recipe) == 0
}

// IsCrafted returns true if a producer turns the recipe into output at a finite rate
func (i Item) IsCrafted() bool {
	return i.Producer != "" && !i.IsRaw() && i.CraftTime > 0 && i.YieldCount > 0
}

// clone returns a copy that shares no slices with the receiver
func (i Item) clone() Item {
	out := i
	if i.Recipe != nil {
		out.Recipe = make([]Ingredient, len(i.Recipe))
		copy(out.Recipe, i.Recipe)
	}
	return out
}

func (i Item) validate() error {
	if i.Name == "" {
		return &ErrInvalidDefinition{Subject: "item", Reason: "name cannot be empty"}
	}
	if i.YieldCount < 0 {
		return &ErrInvalidDefinition{
			Subject: i.Name,
			Reason:  fmt.Sprintf("yield count cannot be negative, got %d", i.YieldCount),
		}
	}
	if i.CraftTime < 0 {
		return &ErrInvalidDefinition{
			Subject: i.Name,
			Reason:  fmt.Sprintf("craft time cannot be negative, got %v", i.CraftTime),
		}
	}

	seen := make(map[string]bool, len(i.Recipe))
	for _, ingredient := range i.Recipe {
		if ingredient.Item == "" {
			return &ErrInvalidDefinition{Subject: i.Name, Reason: "recipe ingredient has no item"}
		}
		if seen[ingredient.Item] {
			return &ErrInvalidDefinition{
				Subject: i.Name,
				Reason:  fmt.Sprintf("recipe lists %s more than once", ingredient.Item),
			}
		}
		seen[ingredient.Item] = true

		if !(ingredient.Quantity > 0) {
			return &ErrInvalidDefinition{
				Subject: i.Name,
				Reason:  fmt.Sprintf("quantity of %s must be positive, got %v", ingredient.Item, ingredient.Quantity),
			}
		}
	}

	// A producer with a recipe must be able to complete a cycle
	if i.Producer != "" && !i.IsRaw() {
		if i.CraftTime == 0 {
			return &ErrDegenerateRecipe{Item: i.Name, Reason: "craft time is zero"}
		}
		if i.YieldCount == 0 {
			return &ErrDegenerateRecipe{Item: i.Name, Reason: "yield count is zero"}
		}
	}

	return nil
}
