package production

// Machinery describes the machines needed to sustain a rate of one crafted item
type Machinery struct {
	// Producer names the machine kind
	Producer string

	// Machines is the (fractional) number of producers needed
	Machines float64

	// Modules is the number of productivity modules installed in each producer
	Modules int
}

// TraversalEntry is one visit of the depth-first walk, in pre-order.
// An item demanded by two parents is visited, and listed, twice.
type TraversalEntry struct {
	Item  string
	Depth int

	// Rate is the demand this branch places on the item, in items/second
	Rate float64

	// Machinery is nil for terminal (raw, fluid, byproduct) items
	Machinery *Machinery
}

// ItemTotal is the aggregated requirement for one unique item
type ItemTotal struct {
	Item string

	// Rate is the summed demand of every parent, in items/second
	Rate float64

	// Machinery is derived once from Rate; nil for terminal items
	Machinery *Machinery
}

// IsTerminal returns true if the item is not crafted by a machine
func (t ItemTotal) IsTerminal() bool {
	return t.Machinery == nil
}

// ThroughputPlan is the result of propagating a target rate through the recipe graph
type ThroughputPlan struct {
	TargetItem string
	TargetRate float64

	// Traversal lists every visit in pre-order, for nested display
	Traversal []TraversalEntry

	// Totals lists every unique item in first-discovery order
	Totals []ItemTotal

	index map[string]int
}

// NewThroughputPlan creates a plan and indexes its totals by item
func NewThroughputPlan(targetItem string, targetRate float64, traversal []TraversalEntry, totals []ItemTotal) *ThroughputPlan {
	index := make(map[string]int, len(totals))
	for i, total := range totals {
		index[total.Item] = i
	}

	return &ThroughputPlan{
		TargetItem: targetItem,
		TargetRate: targetRate,
		Traversal:  traversal,
		Totals:     totals,
		index:      index,
	}
}

// Total returns the aggregated requirement for an item
func (p *ThroughputPlan) Total(item string) (ItemTotal, bool) {
	i, ok := p.index[item]
	if !ok {
		return ItemTotal{}, false
	}
	return p.Totals[i], true
}

// RateMap returns the aggregated rate of every visited item
func (p *ThroughputPlan) RateMap() map[string]float64 {
	rates := make(map[string]float64, len(p.Totals))
	for _, total := range p.Totals {
		rates[total.Item] = total.Rate
	}
	return rates
}

// RawMaterials returns the terminal items of the plan in first-discovery order
func (p *ThroughputPlan) RawMaterials() []ItemTotal {
	result := make([]ItemTotal, 0)
	for _, total := range p.Totals {
		if total.IsTerminal() {
			result = append(result, total)
		}
	}
	return result
}

// MachinesByProducer sums the machine counts of the plan per producer kind
func (p *ThroughputPlan) MachinesByProducer() map[string]float64 {
	result := make(map[string]float64)
	for _, total := range p.Totals {
		if total.Machinery != nil {
			result[total.Machinery.Producer] += total.Machinery.Machines
		}
	}
	return result
}

// MaxDepth returns the deepest level reached by the traversal
func (p *ThroughputPlan) MaxDepth() int {
	depth := 0
	for _, entry := range p.Traversal {
		if entry.Depth > depth {
			depth = entry.Depth
		}
	}
	return depth
}

// ExpansionEntry is one visit of a recipe expansion, in pre-order
type ExpansionEntry struct {
	Item     string
	Depth    int
	Quantity float64
}

// ItemQuantity is the aggregated quantity of one unique item
type ItemQuantity struct {
	Item     string
	Quantity float64
}

// Expansion is the result of expanding a count of an item into its ingredients
type Expansion struct {
	TargetItem string
	Count      float64
	Traversal  []ExpansionEntry
	Totals     []ItemQuantity

	index map[string]int
}

// NewExpansion creates an expansion and indexes its totals by item
func NewExpansion(targetItem string, count float64, traversal []ExpansionEntry, totals []ItemQuantity) *Expansion {
	index := make(map[string]int, len(totals))
	for i, total := range totals {
		index[total.Item] = i
	}

	return &Expansion{
		TargetItem: targetItem,
		Count:      count,
		Traversal:  traversal,
		Totals:     totals,
		index:      index,
	}
}

// Quantity returns the aggregated quantity of an item (0 if never reached)
func (e *Expansion) Quantity(item string) float64 {
	i, ok := e.index[item]
	if !ok {
		return 0
	}
	return e.Totals[i].Quantity
}

// QuantityMap returns the aggregated quantity of every visited item
func (e *Expansion) QuantityMap() map[string]float64 {
	quantities := make(map[string]float64, len(e.Totals))
	for _, total := range e.Totals {
		quantities[total.Item] = total.Quantity
	}
	return quantities
}
