package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateCallReference builds a human-readable, unique reference for a
// capital call, e.g. CC-7-20260825-1A2B3C4D.
func GenerateCallReference(structureID uint) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("CC-%d-%s-%s", structureID, time.Now().UTC().Format("20060102"), suffix)
}
