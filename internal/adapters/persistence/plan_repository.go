package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// Verify interface compliance
var _ production.PlanRepository = (*GormPlanRepository)(nil)

// NewGormPlanRepository creates a new GORM plan repository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save persists a plan record, replacing any record with the same ID
func (r *GormPlanRepository) Save(ctx context.Context, record *production.PlanRecord) error {
	model, err := r.recordToModel(record)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save plan: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a plan record by ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id string) (*production.PlanRecord, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find plan: %w", result.Error)
	}

	return r.modelToRecord(&model)
}

// List retrieves the most recent plan records, newest first (limit <= 0 = all)
func (r *GormPlanRepository) List(ctx context.Context, limit int) ([]*production.PlanRecord, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []PlanModel
	if result := query.Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to list plans: %w", result.Error)
	}

	records := make([]*production.PlanRecord, 0, len(models))
	for i := range models {
		record, err := r.modelToRecord(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert plan %s: %w", models[i].ID, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Delete removes a plan record
func (r *GormPlanRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PlanModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("plan not found: %s", id)
	}

	return nil
}

// recordToModel converts a domain record to a database model
func (r *GormPlanRepository) recordToModel(record *production.PlanRecord) (*PlanModel, error) {
	totals := make([]recordedTotalJSON, 0, len(record.Totals))
	for _, total := range record.Totals {
		totals = append(totals, recordedTotalJSON{
			Item:     total.Item,
			Amount:   total.Amount,
			Producer: total.Producer,
			Machines: total.Machines,
			Modules:  total.Modules,
		})
	}

	totalsJSON, err := json.Marshal(totals)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal totals: %w", err)
	}

	return &PlanModel{
		ID:         record.ID,
		Kind:       record.Kind,
		TargetItem: record.TargetItem,
		Quantity:   record.Quantity,
		Totals:     string(totalsJSON),
		CreatedAt:  record.CreatedAt,
	}, nil
}

// modelToRecord converts a database model to a domain record
func (r *GormPlanRepository) modelToRecord(model *PlanModel) (*production.PlanRecord, error) {
	var totals []recordedTotalJSON
	if model.Totals != "" {
		if err := json.Unmarshal([]byte(model.Totals), &totals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal totals: %w", err)
		}
	}

	record := &production.PlanRecord{
		ID:         model.ID,
		Kind:       model.Kind,
		TargetItem: model.TargetItem,
		Quantity:   model.Quantity,
		Totals:     make([]production.RecordedTotal, 0, len(totals)),
		CreatedAt:  model.CreatedAt,
	}
	for _, total := range totals {
		record.Totals = append(record.Totals, production.RecordedTotal{
			Item:     total.Item,
			Amount:   total.Amount,
			Producer: total.Producer,
			Machines: total.Machines,
			Modules:  total.Modules,
		})
	}

	return record, nil
}
