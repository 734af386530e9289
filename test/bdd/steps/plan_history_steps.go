package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/throughput-go/internal/adapters/persistence"
	"github.com/andrescamacho/throughput-go/internal/application/planner"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/internal/domain/shared"
	"github.com/andrescamacho/throughput-go/test/helpers"
)

// planHistoryContext holds state for plan history scenarios
type planHistoryContext struct {
	catalog *production.Catalog
	clock   *shared.MockClock
	history *planner.PlanHistory

	saved   []*production.PlanRecord
	records []*production.PlanRecord
	found   *production.PlanRecord
	err     error
}

func (pc *planHistoryContext) reset() error {
	// Use shared test database and truncate all tables for test isolation
	if err := helpers.TruncateAllTables(); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	pc.clock = shared.NewMockClock(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	pc.history = planner.NewPlanHistory(persistence.NewGormPlanRepository(helpers.SharedTestDB), pc.clock)
	pc.catalog = nil
	pc.saved = nil
	pc.records = nil
	pc.found = nil
	pc.err = nil
	return nil
}

// InitializePlanHistoryScenario registers plan history steps
func InitializePlanHistoryScenario(ctx *godog.ScenarioContext) {
	pc := &planHistoryContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, pc.reset()
	})

	// Given steps
	ctx.Step(`^a gizmo production catalog$`, pc.aGizmoProductionCatalog)
	ctx.Step(`^I save the throughput plan of "([^"]*)" at ([\d.]+) per second$`, pc.iSaveTheThroughputPlanOf)
	ctx.Step(`^I save the expansion of ([\d.]+) "([^"]*)"$`, pc.iSaveTheExpansionOf)
	ctx.Step(`^(\d+) minutes? pass(?:es)?$`, pc.minutesPass)

	// When steps
	ctx.Step(`^I list the (\d+) most recent plans$`, pc.iListTheMostRecentPlans)
	ctx.Step(`^I look up the first saved plan$`, pc.iLookUpTheFirstSavedPlan)
	ctx.Step(`^I delete the first saved plan$`, pc.iDeleteTheFirstSavedPlan)

	// Then steps
	ctx.Step(`^the listed plans should be for "([^"]*)"$`, pc.theListedPlansShouldBeFor)
	ctx.Step(`^the plan should record "([^"]*)" machines for "([^"]*)"$`, pc.thePlanShouldRecordMachines)
	ctx.Step(`^the plan should record "([^"]*)" of "([^"]*)"$`, pc.thePlanShouldRecordAmount)
	ctx.Step(`^the first saved plan should no longer be found$`, pc.theFirstSavedPlanShouldNoLongerBeFound)
}

func (pc *planHistoryContext) aGizmoProductionCatalog() error {
	c, err := production.NewCatalog(
		[]production.Producer{
			{Name: "assembler", CraftSpeed: 1.25, MaxProductivitySlots: 4},
			{Name: "furnace", CraftSpeed: 2, MaxProductivitySlots: 2},
		},
		[]production.Item{
			{Name: "ore"},
			{Name: "plate", Producer: "furnace", Recipe: []production.Ingredient{{Item: "ore", Quantity: 1}}, YieldCount: 1, CraftTime: 3.2},
			{Name: "gizmo", Producer: "assembler", Recipe: []production.Ingredient{{Item: "plate", Quantity: 2}}, YieldCount: 1, CraftTime: 5},
		},
		nil,
	)
	if err != nil {
		return err
	}
	pc.catalog = c
	return nil
}

func (pc *planHistoryContext) iSaveTheThroughputPlanOf(item string, rate float64) error {
	plan, err := planner.NewThroughputPropagator(pc.catalog).ComputeThroughput(context.Background(), item, rate)
	if err != nil {
		return err
	}
	record, err := pc.history.SaveThroughput(context.Background(), plan)
	if err != nil {
		return err
	}
	pc.saved = append(pc.saved, record)
	return nil
}

func (pc *planHistoryContext) iSaveTheExpansionOf(count float64, item string) error {
	expansion, err := planner.NewRecipeExpander(pc.catalog).ComputeExpansion(context.Background(), item, count)
	if err != nil {
		return err
	}
	record, err := pc.history.SaveExpansion(context.Background(), expansion)
	if err != nil {
		return err
	}
	pc.saved = append(pc.saved, record)
	return nil
}

func (pc *planHistoryContext) minutesPass(minutes int) error {
	pc.clock.Advance(time.Duration(minutes) * time.Minute)
	return nil
}

func (pc *planHistoryContext) iListTheMostRecentPlans(limit int) error {
	pc.records, pc.err = pc.history.Recent(context.Background(), limit)
	return pc.err
}

func (pc *planHistoryContext) iLookUpTheFirstSavedPlan() error {
	if len(pc.saved) == 0 {
		return fmt.Errorf("no plan saved")
	}
	pc.found, pc.err = pc.history.Find(context.Background(), pc.saved[0].ID)
	return pc.err
}

func (pc *planHistoryContext) iDeleteTheFirstSavedPlan() error {
	if len(pc.saved) == 0 {
		return fmt.Errorf("no plan saved")
	}
	return pc.history.Delete(context.Background(), pc.saved[0].ID)
}

func (pc *planHistoryContext) theListedPlansShouldBeFor(items string) error {
	got := make([]string, 0, len(pc.records))
	for _, record := range pc.records {
		got = append(got, record.TargetItem)
	}
	if fmt.Sprint(got) != fmt.Sprint(splitList(items)) {
		return fmt.Errorf("expected plans for %v, got %v", splitList(items), got)
	}
	return nil
}

func (pc *planHistoryContext) thePlanShouldRecordMachines(machines, item string) error {
	if pc.found == nil {
		return fmt.Errorf("no plan looked up")
	}
	total, ok := pc.found.Total(item)
	if !ok {
		return fmt.Errorf("item %s is not recorded", item)
	}
	if total.Machines.String() != machines {
		return fmt.Errorf("expected %s machines for %s, got %s", machines, item, total.Machines.String())
	}
	return nil
}

func (pc *planHistoryContext) thePlanShouldRecordAmount(amount, item string) error {
	if pc.found == nil {
		return fmt.Errorf("no plan looked up")
	}
	total, ok := pc.found.Total(item)
	if !ok {
		return fmt.Errorf("item %s is not recorded", item)
	}
	if total.Amount.String() != amount {
		return fmt.Errorf("expected %s of %s, got %s", amount, item, total.Amount.String())
	}
	return nil
}

func (pc *planHistoryContext) theFirstSavedPlanShouldNoLongerBeFound() error {
	_, err := pc.history.Find(context.Background(), pc.saved[0].ID)
	if err == nil {
		return fmt.Errorf("expected plan %s to be deleted", pc.saved[0].ID)
	}
	return nil
}
