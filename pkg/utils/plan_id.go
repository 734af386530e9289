package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePlanID creates a human-readable plan ID.
// Format: {kind}-{item}-{8charHexUUID}
//
// Example:
//   - Input: kind="throughput", item="automation-science-pack"
//   - Output: "throughput-automation-science-pack-a3f8e2b1"
func GeneratePlanID(kind, item string) string {
	return kind + "-" + item + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
