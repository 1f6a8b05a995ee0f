package diagram

import "github.com/google/uuid"

// IDPrefix starts every generated component id.
const IDPrefix = "shape-"

// NewID returns a fresh component id.
func NewID() string {
	return IDPrefix + uuid.NewString()
}
