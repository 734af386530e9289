package production

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every domain error below unwraps to exactly one of these so
// callers can tell a broken catalog from a bad request with errors.Is.
var (
	// ErrInvalidCatalog marks configuration errors: the recipe data itself is wrong
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrInvalidInput marks rejected arguments: unknown target, non-positive rate or count
	ErrInvalidInput = errors.New("invalid input")
)

// ErrCircularDependency indicates a cycle was detected in the recipe graph
type ErrCircularDependency struct {
	Item  string
	Chain []string
}

func (e *ErrCircularDependency) Error() string {
	return fmt.Sprintf("circular dependency detected for %s: %s", e.Item, strings.Join(e.Chain, " -> "))
}

func (e *ErrCircularDependency) Unwrap() error { return ErrInvalidCatalog }

// ErrUnknownItem indicates an item is not in the catalog.
// ReferencedBy is set when a recipe names the missing item, which makes it a
// configuration error; otherwise the caller asked for it directly.
type ErrUnknownItem struct {
	Item         string
	ReferencedBy string
}

func (e *ErrUnknownItem) Error() string {
	if e.ReferencedBy != "" {
		return fmt.Sprintf("unknown item: %s (referenced by recipe of %s)", e.Item, e.ReferencedBy)
	}
	return fmt.Sprintf("unknown item: %s (not in catalog)", e.Item)
}

func (e *ErrUnknownItem) Unwrap() error {
	if e.ReferencedBy != "" {
		return ErrInvalidCatalog
	}
	return ErrInvalidInput
}

// ErrDegenerateRecipe indicates a craftable item whose machine count cannot be derived
type ErrDegenerateRecipe struct {
	Item   string
	Reason string
}

func (e *ErrDegenerateRecipe) Error() string {
	return fmt.Sprintf("degenerate recipe for %s: %s", e.Item, e.Reason)
}

func (e *ErrDegenerateRecipe) Unwrap() error { return ErrInvalidCatalog }

// ErrInvalidDefinition indicates a malformed producer or item definition
type ErrInvalidDefinition struct {
	Subject string
	Reason  string
}

func (e *ErrInvalidDefinition) Error() string {
	return fmt.Sprintf("invalid definition of %s: %s", e.Subject, e.Reason)
}

func (e *ErrInvalidDefinition) Unwrap() error { return ErrInvalidCatalog }

// ErrInvalidQuantity indicates a requested rate or count that is not a positive finite number
type ErrInvalidQuantity struct {
	Name  string // "rate" or "count"
	Value float64
}

func (e *ErrInvalidQuantity) Error() string {
	return fmt.Sprintf("%s must be a positive number, got %v", e.Name, e.Value)
}

func (e *ErrInvalidQuantity) Unwrap() error { return ErrInvalidInput }
