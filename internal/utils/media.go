package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaPath builds the object-storage key for an uploaded file, following
// the {ownerId}/{timestamp}.{ext} bucket convention.
func MediaPath(ownerID uuid.UUID, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%d.%s", ownerID, time.Now().UnixMilli(), ext)
}
