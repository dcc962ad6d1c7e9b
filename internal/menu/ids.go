package menu

import (
	"strings"

	"github.com/google/uuid"
)

// NewID builds a prefixed short id like "mb_1f3a9c02b4d6". Twelve hex
// characters keep ids readable while staying unique enough for a single
// user's collection.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:12]
}
