package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan kinds stored in the history
const (
	PlanKindThroughput = "throughput"
	PlanKindExpansion  = "expansion"
)

// RecordedTotal is one aggregated line of a saved plan.
// Amounts are fixed-point so stored history does not drift across round trips.
type RecordedTotal struct {
	Item     string
	Amount   decimal.Decimal
	Producer string
	Machines decimal.Decimal
	Modules  int
}

// PlanRecord is a computed plan saved for later review
type PlanRecord struct {
	ID         string
	Kind       string
	TargetItem string
	Quantity   decimal.Decimal
	Totals     []RecordedTotal
	CreatedAt  time.Time
}

// Total returns the recorded line for an item
func (r *PlanRecord) Total(item string) (RecordedTotal, bool) {
	for _, total := range r.Totals {
		if total.Item == item {
			return total, true
		}
	}
	return RecordedTotal{}, false
}
