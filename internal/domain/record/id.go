package record

import (
	"strings"

	"github.com/google/uuid"
)

// IDPrefix tags every generated project ID.
const IDPrefix = "PRJ-"

const idTokenLength = 5

// NewID returns a candidate project ID such as "PRJ-3FA9C".
// Callers must still check it against existing IDs.
func NewID() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:idTokenLength]
	return IDPrefix + strings.ToUpper(token)
}
