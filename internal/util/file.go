package util

import (
	"github.com/google/uuid"
)

// NewFilename builds a unique storage name keeping the original
// extension.
func NewFilename(ext string) string {
	return uuid.New().String() + ext
}
