package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateReference generates a short unique reference with the given prefix,
// e.g. "INV-3F2A91BC" for invoices or "CRD-..." for credits
func GenerateReference(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
