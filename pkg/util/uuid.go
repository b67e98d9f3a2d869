// Package util holds small helpers shared across packages.
package util

import (
	"crypto/md5"
	"encoding/json"

	"github.com/google/uuid"
)

// HashUUID derives a stable UUID from any JSON-serializable value.
// Equal values always produce the same UUID, which makes it suitable
// for change detection on report payloads.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	hash := md5.Sum(raw)
	id, err := uuid.FromBytes(hash[:])
	if err != nil {
		return ""
	}
	return id.String()
}
