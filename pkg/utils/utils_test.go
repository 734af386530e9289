package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePlanID(t *testing.T) {
	// Act
	first := GeneratePlanID("throughput", "automation-science-pack")
	second := GeneratePlanID("throughput", "automation-science-pack")

	// Assert
	assert.Regexp(t, regexp.MustCompile(`^throughput-automation-science-pack-[0-9a-f]{8}$`), first)
	assert.NotEqual(t, first, second)
}

func TestWholeMachines(t *testing.T) {
	tests := []struct {
		machines float64
		want     int
	}{
		{0, 0},
		{-1, 0},
		{0.8, 1},
		{3, 3},
		{3.0000000000004, 3},
		{71.428571, 72},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WholeMachines(tt.machines), "machines=%v", tt.machines)
	}
}

func TestMax(t *testing.T) {
	assert.Equal(t, 3, Max(3, 2))
	assert.Equal(t, 5, Max(1, 5))
}
