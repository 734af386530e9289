package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanModel represents the plans table
type PlanModel struct {
	ID         string          `gorm:"column:id;primaryKey"`
	Kind       string          `gorm:"column:kind;not null;index"`
	TargetItem string          `gorm:"column:target_item;not null;index"`
	Quantity   decimal.Decimal `gorm:"column:quantity;type:text;not null"`
	Totals     string          `gorm:"column:totals;type:text"` // JSON array as text
	CreatedAt  time.Time       `gorm:"column:created_at;not null;index"`
}

func (PlanModel) TableName() string {
	return "plans"
}

// recordedTotalJSON is the serialized form of one plan line
type recordedTotalJSON struct {
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
	Producer string          `json:"producer,omitempty"`
	Machines decimal.Decimal `json:"machines"`
	Modules  int             `json:"modules,omitempty"`
}
