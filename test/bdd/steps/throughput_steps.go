package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// tolerance for rates and machine counts written with 6 decimals in feature files
const tolerance = 1e-5

// throughputContext holds state for catalog, propagation and expansion scenarios
type throughputContext struct {
	producers []production.Producer
	items     []production.Item
	targets   []string

	catalog    *production.Catalog
	catalogErr error

	plan      *production.ThroughputPlan
	expansion *production.Expansion
	batch     *planner.BatchResult
	err       error
}

func (tc *throughputContext) reset() {
	tc.producers = nil
	tc.items = nil
	tc.targets = nil
	tc.catalog = nil
	tc.catalogErr = nil
	tc.plan = nil
	tc.expansion = nil
	tc.batch = nil
	tc.err = nil
}

// InitializeThroughputScenario registers catalog, propagation and expansion steps
func InitializeThroughputScenario(ctx *godog.ScenarioContext) {
	tc := &throughputContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the following producers:$`, tc.theFollowingProducers)
	ctx.Step(`^the following items:$`, tc.theFollowingItems)
	ctx.Step(`^the catalog targets "([^"]*)"$`, tc.theCatalogTargets)

	// When steps
	ctx.Step(`^the catalog is built$`, tc.theCatalogIsBuilt)
	ctx.Step(`^I compute the throughput of "([^"]*)" at (-?[\d.]+) per second$`, tc.iComputeTheThroughputOf)
	ctx.Step(`^I expand (-?[\d.]+) of "([^"]*)"$`, tc.iExpand)
	ctx.Step(`^I plan the catalog targets at ([\d.]+) per second$`, tc.iPlanTheCatalogTargets)

	// Then steps
	ctx.Step(`^the catalog should be accepted$`, tc.theCatalogShouldBeAccepted)
	ctx.Step(`^the catalog should be rejected as an? (circular dependency|unknown item|degenerate recipe|invalid definition)$`, tc.theCatalogShouldBeRejectedAs)
	ctx.Step(`^the error should mention "([^"]*)"$`, tc.theErrorShouldMention)
	ctx.Step(`^"([^"]*)" should need ([\d.]+) "([^"]*)" with (\d+) productivity modules?$`, tc.itemShouldNeedMachines)
	ctx.Step(`^the total rate of "([^"]*)" should be ([\d.]+) per second$`, tc.theTotalRateShouldBe)
	ctx.Step(`^"([^"]*)" should be terminal$`, tc.itemShouldBeTerminal)
	ctx.Step(`^the plan should list (\d+) unique items?$`, tc.thePlanShouldListUniqueItems)
	ctx.Step(`^the traversal should be:$`, tc.theTraversalShouldBe)
	ctx.Step(`^the raw material rates should add up to ([\d.]+) per second$`, tc.theRawMaterialRatesShouldAddUpTo)
	ctx.Step(`^the computation should fail with an invalid input error$`, tc.theComputationShouldFailWithInvalidInput)
	ctx.Step(`^the expansion should need ([\d.]+) of "([^"]*)"$`, tc.theExpansionShouldNeed)
	ctx.Step(`^the expansion should list (\d+) unique items?$`, tc.theExpansionShouldListUniqueItems)
	ctx.Step(`^the combined rate of "([^"]*)" should be ([\d.]+) per second$`, tc.theCombinedRateShouldBe)
}

// ============================================================================
// Given Steps
// ============================================================================

func (tc *throughputContext) theFollowingProducers(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		speed, err := parseFloatCell(table, row, "craft_speed")
		if err != nil {
			return err
		}
		slots, err := parseIntCell(table, row, "slots")
		if err != nil {
			return err
		}
		tc.producers = append(tc.producers, production.Producer{
			Name:                 getCellValueFromTable(table, row, "name"),
			CraftSpeed:           speed,
			MaxProductivitySlots: slots,
		})
	}
	return nil
}

func (tc *throughputContext) theFollowingItems(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		yield, err := parseIntCell(table, row, "yield")
		if err != nil {
			return err
		}
		craftTime, err := parseFloatCell(table, row, "craft_time")
		if err != nil {
			return err
		}
		recipe, err := parseRecipe(getCellValueFromTable(table, row, "recipe"))
		if err != nil {
			return err
		}

		producer := getCellValueFromTable(table, row, "producer")
		if producer == "-" {
			producer = ""
		}

		tc.items = append(tc.items, production.Item{
			Name:        getCellValueFromTable(table, row, "item"),
			Producer:    producer,
			Recipe:      recipe,
			YieldCount:  yield,
			CraftTime:   craftTime,
			BoostExempt: getCellValueFromTable(table, row, "exempt") == "yes",
		})
	}
	return nil
}

func (tc *throughputContext) theCatalogTargets(targets string) error {
	tc.targets = append(tc.targets, splitList(targets)...)
	return nil
}

// ============================================================================
// When Steps
// ============================================================================

func (tc *throughputContext) theCatalogIsBuilt() error {
	tc.catalog, tc.catalogErr = production.NewCatalog(tc.producers, tc.items, tc.targets)
	return nil
}

func (tc *throughputContext) ensureCatalog() error {
	if tc.catalog == nil && tc.catalogErr == nil {
		if err := tc.theCatalogIsBuilt(); err != nil {
			return err
		}
	}
	if tc.catalogErr != nil {
		return fmt.Errorf("catalog is invalid: %w", tc.catalogErr)
	}
	return nil
}

func (tc *throughputContext) iComputeTheThroughputOf(item string, rate float64) error {
	if err := tc.ensureCatalog(); err != nil {
		return err
	}
	tc.plan, tc.err = planner.NewThroughputPropagator(tc.catalog).ComputeThroughput(context.Background(), item, rate)
	return nil
}

func (tc *throughputContext) iExpand(count float64, item string) error {
	if err := tc.ensureCatalog(); err != nil {
		return err
	}
	tc.expansion, tc.err = planner.NewRecipeExpander(tc.catalog).ComputeExpansion(context.Background(), item, count)
	return nil
}

func (tc *throughputContext) iPlanTheCatalogTargets(rate float64) error {
	if err := tc.ensureCatalog(); err != nil {
		return err
	}
	propagator := planner.NewThroughputPropagator(tc.catalog)
	batch := planner.NewBatchPlanner(tc.catalog, propagator, true)
	tc.batch, tc.err = batch.PlanTargets(context.Background(), tc.catalog.TargetItems(), rate)
	return nil
}

// ============================================================================
// Then Steps
// ============================================================================

func (tc *throughputContext) theCatalogShouldBeAccepted() error {
	if tc.catalogErr != nil {
		return fmt.Errorf("expected catalog to be accepted, got: %v", tc.catalogErr)
	}
	return nil
}

func (tc *throughputContext) theCatalogShouldBeRejectedAs(kind string) error {
	if tc.catalogErr == nil {
		return fmt.Errorf("expected catalog to be rejected as %s, but it was accepted", kind)
	}
	if !errors.Is(tc.catalogErr, production.ErrInvalidCatalog) {
		return fmt.Errorf("expected a configuration error, got: %v", tc.catalogErr)
	}

	var matched bool
	switch kind {
	case "circular dependency":
		var target *production.ErrCircularDependency
		matched = errors.As(tc.catalogErr, &target)
	case "unknown item":
		var target *production.ErrUnknownItem
		matched = errors.As(tc.catalogErr, &target)
	case "degenerate recipe":
		var target *production.ErrDegenerateRecipe
		matched = errors.As(tc.catalogErr, &target)
	case "invalid definition":
		var target *production.ErrInvalidDefinition
		matched = errors.As(tc.catalogErr, &target)
	}

	if !matched {
		return fmt.Errorf("expected %s error, got %T: %v", kind, tc.catalogErr, tc.catalogErr)
	}
	return nil
}

func (tc *throughputContext) theErrorShouldMention(text string) error {
	err := tc.err
	if err == nil {
		err = tc.catalogErr
	}
	if err == nil {
		return fmt.Errorf("expected an error mentioning %q, got none", text)
	}
	if !strings.Contains(err.Error(), text) {
		return fmt.Errorf("expected error to mention %q, got: %v", text, err)
	}
	return nil
}

func (tc *throughputContext) requirePlan() error {
	if tc.err != nil {
		return fmt.Errorf("computation failed: %w", tc.err)
	}
	if tc.plan == nil {
		return fmt.Errorf("no plan computed")
	}
	return nil
}

func (tc *throughputContext) itemShouldNeedMachines(item string, machines float64, producer string, modules int) error {
	if err := tc.requirePlan(); err != nil {
		return err
	}

	total, ok := tc.plan.Total(item)
	if !ok {
		return fmt.Errorf("item %s is not part of the plan", item)
	}
	if total.Machinery == nil {
		return fmt.Errorf("item %s is terminal, expected %v %s", item, machines, producer)
	}
	if total.Machinery.Producer != producer {
		return fmt.Errorf("expected %s to be made by %s, got %s", item, producer, total.Machinery.Producer)
	}
	if math.Abs(total.Machinery.Machines-machines) > tolerance {
		return fmt.Errorf("expected %v machines for %s, got %v", machines, item, total.Machinery.Machines)
	}
	if total.Machinery.Modules != modules {
		return fmt.Errorf("expected %d modules for %s, got %d", modules, item, total.Machinery.Modules)
	}
	return nil
}

func (tc *throughputContext) theTotalRateShouldBe(item string, rate float64) error {
	if err := tc.requirePlan(); err != nil {
		return err
	}

	total, ok := tc.plan.Total(item)
	if !ok {
		return fmt.Errorf("item %s is not part of the plan", item)
	}
	if math.Abs(total.Rate-rate) > tolerance {
		return fmt.Errorf("expected %s at %v/s, got %v/s", item, rate, total.Rate)
	}
	return nil
}

func (tc *throughputContext) itemShouldBeTerminal(item string) error {
	if err := tc.requirePlan(); err != nil {
		return err
	}

	total, ok := tc.plan.Total(item)
	if !ok {
		return fmt.Errorf("item %s is not part of the plan", item)
	}
	if !total.IsTerminal() {
		return fmt.Errorf("expected %s to be terminal, got %v %s", item, total.Machinery.Machines, total.Machinery.Producer)
	}
	return nil
}

func (tc *throughputContext) thePlanShouldListUniqueItems(count int) error {
	if err := tc.requirePlan(); err != nil {
		return err
	}
	if len(tc.plan.Totals) != count {
		return fmt.Errorf("expected %d unique items, got %d", count, len(tc.plan.Totals))
	}
	return nil
}

func (tc *throughputContext) theTraversalShouldBe(table *godog.Table) error {
	if err := tc.requirePlan(); err != nil {
		return err
	}

	rows := table.Rows[1:]
	if len(rows) != len(tc.plan.Traversal) {
		return fmt.Errorf("expected %d visits, got %d", len(rows), len(tc.plan.Traversal))
	}

	for i, row := range rows {
		entry := tc.plan.Traversal[i]
		item := getCellValueFromTable(table, row, "item")
		depth, err := strconv.Atoi(getCellValueFromTable(table, row, "depth"))
		if err != nil {
			return err
		}
		if entry.Item != item || entry.Depth != depth {
			return fmt.Errorf("visit %d: expected %s at depth %d, got %s at depth %d", i, item, depth, entry.Item, entry.Depth)
		}
	}
	return nil
}

func (tc *throughputContext) theRawMaterialRatesShouldAddUpTo(rate float64) error {
	if err := tc.requirePlan(); err != nil {
		return err
	}

	sum := 0.0
	for _, raw := range tc.plan.RawMaterials() {
		sum += raw.Rate
	}
	if math.Abs(sum-rate) > tolerance {
		return fmt.Errorf("expected raw materials to add up to %v/s, got %v/s", rate, sum)
	}
	return nil
}

func (tc *throughputContext) theComputationShouldFailWithInvalidInput() error {
	if tc.err == nil {
		return fmt.Errorf("expected an invalid input error, got none")
	}
	if !errors.Is(tc.err, production.ErrInvalidInput) {
		return fmt.Errorf("expected an invalid input error, got: %v", tc.err)
	}
	if tc.plan != nil || tc.expansion != nil {
		return fmt.Errorf("expected no partial result")
	}
	return nil
}

func (tc *throughputContext) theExpansionShouldNeed(quantity float64, item string) error {
	if tc.err != nil {
		return fmt.Errorf("expansion failed: %w", tc.err)
	}
	got := tc.expansion.Quantity(item)
	if math.Abs(got-quantity) > tolerance {
		return fmt.Errorf("expected %v of %s, got %v", quantity, item, got)
	}
	return nil
}

func (tc *throughputContext) theExpansionShouldListUniqueItems(count int) error {
	if tc.err != nil {
		return fmt.Errorf("expansion failed: %w", tc.err)
	}
	if len(tc.expansion.Totals) != count {
		return fmt.Errorf("expected %d unique items, got %d", count, len(tc.expansion.Totals))
	}
	return nil
}

func (tc *throughputContext) theCombinedRateShouldBe(item string, rate float64) error {
	if tc.err != nil {
		return fmt.Errorf("batch failed: %w", tc.err)
	}
	for _, total := range tc.batch.Combined {
		if total.Item == item {
			if math.Abs(total.Rate-rate) > tolerance {
				return fmt.Errorf("expected combined %s at %v/s, got %v/s", item, rate, total.Rate)
			}
			return nil
		}
	}
	return fmt.Errorf("item %s is not part of the combined requirements", item)
}
