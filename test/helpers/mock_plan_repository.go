package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
)

// MockPlanRepository is a test double for PlanRepository interface
type MockPlanRepository struct {
	mu      sync.RWMutex
	records map[string]*production.PlanRecord

	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMockPlanRepository creates a new mock plan repository
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		records: make(map[string]*production.PlanRecord),
	}
}

// Save stores a plan record
func (m *MockPlanRepository) Save(ctx context.Context, record *production.PlanRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

// FindByID retrieves a plan record by ID
func (m *MockPlanRepository) FindByID(ctx context.Context, id string) (*production.PlanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("plan not found: %s", id)
	}
	return record, nil
}

// List returns the newest records first
func (m *MockPlanRepository) List(ctx context.Context, limit int) ([]*production.PlanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*production.PlanRecord, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Delete removes a plan record
func (m *MockPlanRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("plan not found: %s", id)
	}
	delete(m.records, id)
	return nil
}

// Count returns the number of stored records
func (m *MockPlanRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
