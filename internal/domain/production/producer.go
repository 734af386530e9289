package production

import "fmt"

const (
	// ProductivityBonusPerModule is the extra output fraction each productivity module grants
	ProductivityBonusPerModule = 0.1

	// SpeedPenaltyPerModule is the craft speed fraction each productivity module costs
	SpeedPenaltyPerModule = 0.15
)

// Producer is a machine kind that crafts items (assembler, furnace, chemical plant...).
type Producer struct {
	Name                 string
	CraftSpeed           float64
	MaxProductivitySlots int
}

// Modifiers describes the effect of the module loadout applied to one recipe
type Modifiers struct {
	// Productivity multiplies the output of one craft cycle (1 = no bonus)
	Productivity float64

	// SpeedPenalty multiplies the producer's craft speed (1 = no penalty)
	SpeedPenalty float64

	// Modules is the number of productivity modules installed
	Modules int
}

// ModifiersFor returns the modifiers for a recipe run on this producer.
// Every slot is filled with a productivity module unless the recipe is boost-exempt,
// in which case the machine runs bare.
func (p Producer) ModifiersFor(boostExempt bool) Modifiers {
	if boostExempt {
		return Modifiers{Productivity: 1, SpeedPenalty: 1, Modules: 0}
	}

	slots := float64(p.MaxProductivitySlots)
	return Modifiers{
		Productivity: 1 + ProductivityBonusPerModule*slots,
		SpeedPenalty: 1 - SpeedPenaltyPerModule*slots,
		Modules:      p.MaxProductivitySlots,
	}
}

// EffectiveCraftSpeed is the producer's craft speed after the module penalty
func (p Producer) EffectiveCraftSpeed(m Modifiers) float64 {
	return p.CraftSpeed * m.SpeedPenalty
}

func (p Producer) validate() error {
	if p.Name == "" {
		return &ErrInvalidDefinition{Subject: "producer", Reason: "name cannot be empty"}
	}
	if !(p.CraftSpeed > 0) {
		return &ErrInvalidDefinition{
			Subject: p.Name,
			Reason:  fmt.Sprintf("craft speed must be positive, got %v", p.CraftSpeed),
		}
	}
	if p.MaxProductivitySlots < 0 {
		return &ErrInvalidDefinition{
			Subject: p.Name,
			Reason:  fmt.Sprintf("productivity slots cannot be negative, got %d", p.MaxProductivitySlots),
		}
	}
	// A full module loadout must leave the machine with some speed
	if penalty := p.ModifiersFor(false).SpeedPenalty; penalty <= 0 {
		return &ErrInvalidDefinition{
			Subject: p.Name,
			Reason:  fmt.Sprintf("%d productivity slots leave a speed multiplier of %.2f", p.MaxProductivitySlots, penalty),
		}
	}
	return nil
}
