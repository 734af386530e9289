package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/pkg/utils"
)

// PlanFormatter renders throughput plans and recipe expansions for the terminal
type PlanFormatter struct {
	precision int32
	printer   *message.Printer
	title     cases.Caser
}

// NewPlanFormatter creates a formatter that prints amounts with the given number of decimals
func NewPlanFormatter(precision int) *PlanFormatter {
	return &PlanFormatter{
		precision: int32(precision),
		printer:   message.NewPrinter(language.English),
		title:     cases.Title(language.English),
	}
}

// DisplayName turns an item id into a heading, e.g. "iron-gear-wheel" -> "Iron Gear Wheel"
func (f *PlanFormatter) DisplayName(item string) string {
	return f.title.String(strings.ReplaceAll(item, "-", " "))
}

// FormatThroughputTree renders every visit of the plan as a nested tree
func (f *PlanFormatter) FormatThroughputTree(plan *production.ThroughputPlan) string {
	if plan == nil || len(plan.Traversal) == 0 {
		return "(empty plan)"
	}

	depths := make([]int, len(plan.Traversal))
	for i, entry := range plan.Traversal {
		depths[i] = entry.Depth
	}

	var builder strings.Builder
	for i, prefix := range treePrefixes(depths) {
		entry := plan.Traversal[i]
		builder.WriteString(prefix)
		builder.WriteString(f.throughputLine(entry.Item, entry.Rate, entry.Machinery))
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatThroughputTotals renders the aggregated requirement of every unique item
func (f *PlanFormatter) FormatThroughputTotals(totals []production.ItemTotal) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tRATE/S\tMACHINES\tBUILD\tPRODUCER\tMODULES")
	fmt.Fprintln(w, "----\t------\t--------\t-----\t--------\t-------")

	for _, total := range totals {
		if total.IsTerminal() {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t(raw)\t-\n", total.Item, f.amount(total.Rate))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n",
			total.Item,
			f.amount(total.Rate),
			f.amount(total.Machinery.Machines),
			utils.WholeMachines(total.Machinery.Machines),
			total.Machinery.Producer,
			total.Machinery.Modules,
		)
	}

	w.Flush()
	return builder.String()
}

// FormatThroughputSummary creates a compact summary of the plan
func (f *PlanFormatter) FormatThroughputSummary(plan *production.ThroughputPlan) string {
	var machines float64
	build := 0
	for _, total := range plan.Totals {
		if total.Machinery != nil {
			machines += total.Machinery.Machines
			build += utils.WholeMachines(total.Machinery.Machines)
		}
	}

	return f.printer.Sprintf(
		"%s at %v/s: %d items (%d raw), depth=%d, %.2f machines (%d to build)",
		plan.TargetItem, plan.TargetRate, len(plan.Totals), len(plan.RawMaterials()), plan.MaxDepth(), machines, build,
	)
}

// FormatMachinesByProducer lists the machine count per producer, alphabetically
func (f *PlanFormatter) FormatMachinesByProducer(plan *production.ThroughputPlan) string {
	byProducer := plan.MachinesByProducer()
	names := make([]string, 0, len(byProducer))
	for name := range byProducer {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		builder.WriteString(f.printer.Sprintf("  %-24s %.2f\n", name, byProducer[name]))
	}
	return builder.String()
}

// FormatExpansionTree renders every visit of the expansion as a nested tree
func (f *PlanFormatter) FormatExpansionTree(expansion *production.Expansion) string {
	if expansion == nil || len(expansion.Traversal) == 0 {
		return "(empty expansion)"
	}

	depths := make([]int, len(expansion.Traversal))
	for i, entry := range expansion.Traversal {
		depths[i] = entry.Depth
	}

	var builder strings.Builder
	for i, prefix := range treePrefixes(depths) {
		entry := expansion.Traversal[i]
		builder.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, entry.Item, f.amount(entry.Quantity)))
	}
	return builder.String()
}

// FormatExpansionTotals renders the aggregated quantity of every unique item
func (f *PlanFormatter) FormatExpansionTotals(expansion *production.Expansion) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tQUANTITY")
	fmt.Fprintln(w, "----\t--------")
	for _, total := range expansion.Totals {
		fmt.Fprintf(w, "%s\t%s\n", total.Item, f.amount(total.Quantity))
	}
	w.Flush()
	return builder.String()
}

// FormatTiers renders plan totals grouped by distance from raw materials
func (f *PlanFormatter) FormatTiers(tiers []planner.Tier) string {
	var builder strings.Builder
	for _, tier := range tiers {
		names := make([]string, 0, len(tier.Items))
		for _, item := range tier.Items {
			names = append(names, item.Item)
		}
		builder.WriteString(f.printer.Sprintf("Tier %d (%.2f machines): %s\n", tier.Level, tier.Machines, strings.Join(names, ", ")))
	}
	return builder.String()
}

// FormatRecord renders a saved plan
func (f *PlanFormatter) FormatRecord(record *production.PlanRecord) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Plan:      %s\n", record.ID))
	builder.WriteString(fmt.Sprintf("Kind:      %s\n", record.Kind))
	builder.WriteString(fmt.Sprintf("Item:      %s\n", record.TargetItem))
	builder.WriteString(fmt.Sprintf("Quantity:  %s\n", record.Quantity.StringFixed(f.precision)))
	builder.WriteString(fmt.Sprintf("Created:   %s\n\n", record.CreatedAt.Format("2006-01-02 15:04:05")))

	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tAMOUNT\tMACHINES\tPRODUCER\tMODULES")
	fmt.Fprintln(w, "----\t------\t--------\t--------\t-------")
	for _, total := range record.Totals {
		if total.Producer == "" {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\n", total.Item, total.Amount.StringFixed(f.precision))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			total.Item,
			total.Amount.StringFixed(f.precision),
			total.Machines.StringFixed(f.precision),
			total.Producer,
			total.Modules,
		)
	}
	w.Flush()
	return builder.String()
}

func (f *PlanFormatter) throughputLine(item string, rate float64, machinery *production.Machinery) string {
	if machinery == nil {
		return fmt.Sprintf("%s: %s/s", item, f.amount(rate))
	}
	return fmt.Sprintf("%s: %s/s, %s %s with %d productivity modules",
		item, f.amount(rate), f.amount(machinery.Machines), machinery.Producer, machinery.Modules)
}

func (f *PlanFormatter) amount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(f.precision)
}

// treePrefixes computes the box-drawing prefix of each pre-order entry from its depth
func treePrefixes(depths []int) []string {
	n := len(depths)
	isLast := make([]bool, n)
	for i := 0; i < n; i++ {
		isLast[i] = true
		for j := i + 1; j < n && depths[j] >= depths[i]; j++ {
			if depths[j] == depths[i] {
				isLast[i] = false
				break
			}
		}
	}

	prefixes := make([]string, n)
	// open[d] is true while the ancestor at depth d still has siblings below it
	open := []bool{}
	for i, depth := range depths {
		if depth == 0 {
			open = open[:0]
			continue
		}

		var builder strings.Builder
		for d := 1; d < depth && d < len(open); d++ {
			if open[d] {
				builder.WriteString("│   ")
			} else {
				builder.WriteString("    ")
			}
		}
		if isLast[i] {
			builder.WriteString("└── ")
		} else {
			builder.WriteString("├── ")
		}
		prefixes[i] = builder.String()

		for len(open) <= depth {
			open = append(open, false)
		}
		open = open[:depth+1]
		open[depth] = !isLast[i]
	}
	return prefixes
}
