package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/example/feria/internal/models"
)

func TestProfileUpdatesOverwritesChangedFields(t *testing.T) {
	profile := &models.BuyerProfile{Phone: "911111111", Address: "Av. Arequipa 100"}

	updates := profileUpdates(profile, "Jr. Cusco 45", "987654321")

	assert.Equal(t, map[string]interface{}{
		"address": "Jr. Cusco 45",
		"phone":   "987654321",
	}, updates)
	assert.Equal(t, "Jr. Cusco 45", profile.Address)
	assert.Equal(t, "987654321", profile.Phone)
}

func TestProfileUpdatesIdempotentWithoutNewData(t *testing.T) {
	profile := &models.BuyerProfile{Phone: "987654321", Address: "Av. Arequipa 100"}

	// Same values again: no write should be issued.
	assert.Empty(t, profileUpdates(profile, "Av. Arequipa 100", "987654321"))

	// No values at all: stored fields stay untouched.
	assert.Empty(t, profileUpdates(profile, "", ""))
	assert.Equal(t, "987654321", profile.Phone)
	assert.Equal(t, "Av. Arequipa 100", profile.Address)
}

func TestProfileUpdatesIgnoresWhitespaceOnly(t *testing.T) {
	profile := &models.BuyerProfile{Address: "Av. Arequipa 100"}

	assert.Empty(t, profileUpdates(profile, "   ", "\t"))
}

func TestProfileUpdatesPartial(t *testing.T) {
	profile := &models.BuyerProfile{Phone: "987654321", Address: "Av. Arequipa 100"}

	updates := profileUpdates(profile, "", "900000000")

	assert.Equal(t, map[string]interface{}{"phone": "900000000"}, updates)
	assert.Equal(t, "Av. Arequipa 100", profile.Address)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "b", firstNonEmpty("  ", "b"))
	assert.Equal(t, "", firstNonEmpty("", " "))
}

func TestCreateOrderWithRetryRegeneratesNumberOnCollision(t *testing.T) {
	var attempts []string
	order := &models.Order{}

	err := createOrderWithRetry(order, func(o *models.Order) error {
		attempts = append(attempts, o.OrderNumber)
		if len(attempts) == 1 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Len(t, attempts, 2)
	assert.NotEqual(t, attempts[0], attempts[1])
	assert.Equal(t, attempts[1], order.OrderNumber)
}

func TestCreateOrderWithRetryGivesUpAfterSecondCollision(t *testing.T) {
	calls := 0

	err := createOrderWithRetry(&models.Order{}, func(o *models.Order) error {
		calls++
		return gorm.ErrDuplicatedKey
	})

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, 2, calls)
}

func TestCreateOrderWithRetryPassesThroughOtherErrors(t *testing.T) {
	calls := 0
	boom := errors.New("connection reset")

	err := createOrderWithRetry(&models.Order{}, func(o *models.Order) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}
