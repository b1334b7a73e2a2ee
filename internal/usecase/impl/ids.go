package impl

import (
	"strings"

	"github.com/google/uuid"
)

// newID builds a prefixed identifier backed by a UUID, e.g. "pay_9f86d08..."
func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
