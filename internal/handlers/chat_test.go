package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "hola", truncate("hola", 80))
	assert.Equal(t, "", truncate("", 80))
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// Each "ñ" is two bytes; a byte cut at 80 would land mid-rune.
	msg := strings.Repeat("ñ", 100)

	got := truncate(msg, 80)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 80, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("ñ", 80), got)
}

func TestTruncateMixedWidthRunes(t *testing.T) {
	got := truncate("¿Está disponible el día sábado? "+strings.Repeat("á", 60), 40)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 40, utf8.RuneCountInString(got))
}
