package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// Document is the YAML form of a crafting catalog
type Document struct {
	Producers []ProducerDefinition `yaml:"producers" validate:"required,min=1,dive"`
	Items     []ItemDefinition     `yaml:"items" validate:"required,min=1,dive"`
	Targets   []string             `yaml:"targets" validate:"dive,required"`
}

// ProducerDefinition describes one machine kind
type ProducerDefinition struct {
	Name              string  `yaml:"name" validate:"required"`
	CraftSpeed        float64 `yaml:"craft_speed" validate:"gt=0"`
	ProductivitySlots int     `yaml:"productivity_slots" validate:"gte=0"`
}

// ItemDefinition describes one item and its recipe
type ItemDefinition struct {
	Name        string  `yaml:"name" validate:"required"`
	Producer    string  `yaml:"producer"`
	Recipe      Recipe  `yaml:"recipe"`
	Yield       int     `yaml:"yield" validate:"gte=0"`
	CraftTime   float64 `yaml:"craft_time" validate:"gte=0"`
	BoostExempt bool    `yaml:"boost_exempt"`
}

// Recipe is an ordered mapping of ingredient item to quantity.
// Document order is kept because it drives the traversal order of every plan.
type Recipe []production.Ingredient

// UnmarshalYAML decodes a mapping node key by key, rejecting repeated ingredients
func (r *Recipe) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: recipe must be a mapping of item to quantity", node.Line)
	}

	recipe := make(Recipe, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		if seen[key.Value] {
			return fmt.Errorf("line %d: ingredient %s listed more than once", key.Line, key.Value)
		}
		seen[key.Value] = true

		var quantity float64
		if err := value.Decode(&quantity); err != nil {
			return fmt.Errorf("line %d: quantity of %s: %w", value.Line, key.Value, err)
		}
		recipe = append(recipe, production.Ingredient{Item: key.Value, Quantity: quantity})
	}

	*r = recipe
	return nil
}

// toDomain converts the document into validated domain types
func (d *Document) toDomain() (*production.Catalog, error) {
	producers := make([]production.Producer, 0, len(d.Producers))
	for _, p := range d.Producers {
		producers = append(producers, production.Producer{
			Name:                 p.Name,
			CraftSpeed:           p.CraftSpeed,
			MaxProductivitySlots: p.ProductivitySlots,
		})
	}

	items := make([]production.Item, 0, len(d.Items))
	for _, i := range d.Items {
		items = append(items, production.Item{
			Name:        i.Name,
			Producer:    i.Producer,
			Recipe:      []production.Ingredient(i.Recipe),
			YieldCount:  i.Yield,
			CraftTime:   i.CraftTime,
			BoostExempt: i.BoostExempt,
		})
	}

	return production.NewCatalog(producers, items, d.Targets)
}
