package config

// CatalogConfig selects the crafting catalog
type CatalogConfig struct {
	// Path to a catalog YAML document (empty = built-in catalog)
	Path string `mapstructure:"path" validate:"omitempty,file"`

	// Recursion guard for recipe traversal
	MaxDepth int `mapstructure:"max_depth" validate:"min=1,max=1024"`
}

// PlannerConfig holds planner defaults
type PlannerConfig struct {
	// Rate used by the targets command when none is given (items/second)
	DefaultRate float64 `mapstructure:"default_rate" validate:"gt=0"`

	// Plan batch targets concurrently
	Parallel bool `mapstructure:"parallel"`
}
