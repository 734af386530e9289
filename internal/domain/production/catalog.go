package production

import (
	"fmt"
	"sort"
)

// Catalog is the immutable table of producers and items a plan is computed against.
// It is validated once at construction and safe for concurrent readers.
type Catalog struct {
	producers map[string]Producer
	items     map[string]Item
	order     []string
	targets   []string
}

// Verify interface compliance
var _ RecipeSource = (*Catalog)(nil)

// NewCatalog builds a catalog and validates it as a whole: definitions, references,
// degenerate recipes and recipe graph acyclicity. No partially valid catalog is returned.
func NewCatalog(producers []Producer, items []Item, targets []string) (*Catalog, error) {
	c := &Catalog{
		producers: make(map[string]Producer, len(producers)),
		items:     make(map[string]Item, len(items)),
		order:     make([]string, 0, len(items)),
		targets:   make([]string, 0, len(targets)),
	}

	for _, producer := range producers {
		if err := producer.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.producers[producer.Name]; exists {
			return nil, &ErrInvalidDefinition{Subject: producer.Name, Reason: "producer defined more than once"}
		}
		c.producers[producer.Name] = producer
	}

	for _, item := range items {
		if err := item.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.items[item.Name]; exists {
			return nil, &ErrInvalidDefinition{Subject: item.Name, Reason: "item defined more than once"}
		}
		if item.Producer != "" {
			if _, exists := c.producers[item.Producer]; !exists {
				return nil, &ErrInvalidDefinition{
					Subject: item.Name,
					Reason:  fmt.Sprintf("unknown producer %s", item.Producer),
				}
			}
		}
		c.items[item.Name] = item.clone()
		c.order = append(c.order, item.Name)
	}

	// References are checked once every item is known, so document order does not matter
	for _, name := range c.order {
		for _, ingredient := range c.items[name].Recipe {
			if _, exists := c.items[ingredient.Item]; !exists {
				return nil, &ErrUnknownItem{Item: ingredient.Item, ReferencedBy: name}
			}
		}
	}

	for _, target := range targets {
		if _, exists := c.items[target]; !exists {
			return nil, &ErrInvalidDefinition{
				Subject: "targets",
				Reason:  fmt.Sprintf("unknown target item %s", target),
			}
		}
		c.targets = append(c.targets, target)
	}

	if err := c.detectCycles(); err != nil {
		return nil, err
	}

	return c, nil
}

// detectCycles walks every item depth-first in catalog order, so the reported
// chain is deterministic for a given document.
func (c *Catalog) detectCycles() error {
	done := make(map[string]bool, len(c.items))
	visiting := make(map[string]bool)

	for _, name := range c.order {
		if err := c.detectCyclesRecursive(name, done, visiting, []string{}); err != nil {
			return err
		}
	}
	return nil
}

// detectCyclesRecursive is the internal recursive function for cycle detection
func (c *Catalog) detectCyclesRecursive(
	name string,
	done map[string]bool,
	visiting map[string]bool,
	path []string,
) error {
	if visiting[name] {
		chain := make([]string, 0, len(path)+1)
		chain = append(chain, path...)
		return &ErrCircularDependency{
			Item:  name,
			Chain: append(chain, name),
		}
	}
	if done[name] {
		return nil
	}

	visiting[name] = true
	currentPath := append(path, name)

	for _, ingredient := range c.items[name].Recipe {
		if err := c.detectCyclesRecursive(ingredient.Item, done, visiting, currentPath); err != nil {
			return err
		}
	}

	visiting[name] = false
	done[name] = true
	return nil
}

// Producer returns the producer with the given name
func (c *Catalog) Producer(name string) (Producer, bool) {
	p, ok := c.producers[name]
	return p, ok
}

// Item returns a copy of the item with the given name
func (c *Catalog) Item(name string) (Item, bool) {
	item, ok := c.items[name]
	if !ok {
		return Item{}, false
	}
	return item.clone(), true
}

// Items returns every item in catalog order
func (c *Catalog) Items() []Item {
	result := make([]Item, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, c.items[name].clone())
	}
	return result
}

// Producers returns every producer, ordered by name
func (c *Catalog) Producers() []Producer {
	result := make([]Producer, 0, len(c.producers))
	for _, p := range c.producers {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TargetItems returns the end-goal outputs the catalog declares
func (c *Catalog) TargetItems() []string {
	result := make([]string, len(c.targets))
	copy(result, c.targets)
	return result
}

// IsTarget returns true if the item is one of the catalog's end-goal outputs
func (c *Catalog) IsTarget(name string) bool {
	for _, target := range c.targets {
		if target == name {
			return true
		}
	}
	return false
}

// Len returns the number of items in the catalog
func (c *Catalog) Len() int {
	return len(c.order)
}

// RecipeSource implementation

// Contains returns true if the item is in the catalog
func (c *Catalog) Contains(item string) bool {
	_, ok := c.items[item]
	return ok
}

// ProducerOf returns the producer that crafts the item, if any
func (c *Catalog) ProducerOf(item string) (Producer, bool) {
	i, ok := c.items[item]
	if !ok || i.Producer == "" {
		return Producer{}, false
	}
	return c.Producer(i.Producer)
}

// Recipe returns a copy of the item's recipe (empty for raw items)
func (c *Catalog) Recipe(item string) []Ingredient {
	i, ok := c.items[item]
	if !ok || len(i.Recipe) == 0 {
		return []Ingredient{}
	}
	recipe := make([]Ingredient, len(i.Recipe))
	copy(recipe, i.Recipe)
	return recipe
}

// YieldCount returns the units one craft cycle of the item produces
func (c *Catalog) YieldCount(item string) int {
	return c.items[item].YieldCount
}

// CraftTime returns the seconds one craft cycle of the item takes
func (c *Catalog) CraftTime(item string) float64 {
	return c.items[item].CraftTime
}

// IsBoostExempt returns true if productivity modules cannot amplify the item's recipe
func (c *Catalog) IsBoostExempt(item string) bool {
	return c.items[item].BoostExempt
}
