package production

import "context"

// RecipeSource is the read-only view of the catalog the planners walk.
// Catalog implements it; tests may supply smaller fixtures.
type RecipeSource interface {
	// Contains returns true if the item exists
	Contains(item string) bool

	// ProducerOf returns the producer that crafts the item (false for raw/fluid items)
	ProducerOf(item string) (Producer, bool)

	// Recipe returns the ingredients of one craft cycle (empty for raw items)
	Recipe(item string) []Ingredient

	// YieldCount returns the units one craft cycle produces
	YieldCount(item string) int

	// CraftTime returns the seconds one craft cycle takes at craft speed 1
	CraftTime(item string) float64

	// IsBoostExempt returns true if productivity modules cannot amplify the recipe
	IsBoostExempt(item string) bool
}

// PlanRepository defines the persistence interface for computed plans
type PlanRepository interface {
	// Save persists a plan record
	Save(ctx context.Context, record *PlanRecord) error

	// FindByID retrieves a plan record by ID
	FindByID(ctx context.Context, id string) (*PlanRecord, error)

	// List retrieves the most recent plan records, newest first
	List(ctx context.Context, limit int) ([]*PlanRecord, error)

	// Delete removes a plan record
	Delete(ctx context.Context, id string) error
}
