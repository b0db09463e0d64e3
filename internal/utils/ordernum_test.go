package utils

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{14}-[A-Z2-9]{4}$`)

	for i := 0; i < 20; i++ {
		number := GenerateOrderNumber()
		assert.Regexp(t, pattern, number)
	}
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[GenerateOrderNumber()] = true
	}
	// Random suffixes should not all collide within one second.
	assert.Greater(t, len(seen), 1)
}

func TestMediaPath(t *testing.T) {
	ownerID := uuid.New()

	path := MediaPath(ownerID, ".PNG")
	require.Regexp(t, regexp.MustCompile(`^`+ownerID.String()+`/\d+\.png$`), path)

	assert.Regexp(t, regexp.MustCompile(`\.jpg$`), MediaPath(ownerID, ""))
}
