package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/throughput-go/internal/adapters/persistence"
	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/test/helpers"
)

func newTestRecord(id, item string, createdAt time.Time) *production.PlanRecord {
	return &production.PlanRecord{
		ID:         id,
		Kind:       production.PlanKindThroughput,
		TargetItem: item,
		Quantity:   decimal.RequireFromString("45"),
		Totals: []production.RecordedTotal{
			{
				Item:     item,
				Amount:   decimal.RequireFromString("45"),
				Producer: "assembling-machine-3",
				Machines: decimal.RequireFromString("321.428571"),
				Modules:  4,
			},
			{
				Item:   "iron-ore",
				Amount: decimal.RequireFromString("27.551020"),
			},
		},
		CreatedAt: createdAt,
	}
}

func TestPlanRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record := newTestRecord("plan-1", "automation-science-pack", createdAt)

	// Act - Save
	err := repo.Save(context.Background(), record)

	// Assert
	require.NoError(t, err)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), "plan-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)
	assert.Equal(t, record.Kind, found.Kind)
	assert.Equal(t, record.TargetItem, found.TargetItem)
	assert.True(t, record.Quantity.Equal(found.Quantity))
	assert.True(t, createdAt.Equal(found.CreatedAt))
	require.Len(t, found.Totals, 2)

	pack := found.Totals[0]
	assert.Equal(t, "assembling-machine-3", pack.Producer)
	assert.Equal(t, 4, pack.Modules)
	assert.Equal(t, "321.428571", pack.Machines.String())

	ore := found.Totals[1]
	assert.Empty(t, ore.Producer)
	assert.True(t, ore.Machines.IsZero())
	assert.Equal(t, "27.55102", ore.Amount.String())
}

func TestPlanRepository_ListNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, item := range []string{"pipe", "rail", "wall"} {
		id := "plan-" + item
		require.NoError(t, repo.Save(context.Background(), newTestRecord(id, item, base.Add(time.Duration(i)*time.Hour))))
	}

	// Act
	records, err := repo.List(context.Background(), 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "wall", records[0].TargetItem)
	assert.Equal(t, "rail", records[1].TargetItem)

	all, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPlanRepository_Delete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	require.NoError(t, repo.Save(context.Background(), newTestRecord("plan-1", "pipe", time.Now().UTC())))

	// Act
	err := repo.Delete(context.Background(), "plan-1")

	// Assert
	require.NoError(t, err)
	_, err = repo.FindByID(context.Background(), "plan-1")
	assert.ErrorContains(t, err, "plan not found")
	assert.ErrorContains(t, repo.Delete(context.Background(), "plan-1"), "plan not found")
}

func TestPlanRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), "plan-missing")

	// Assert
	assert.Error(t, err)
}
