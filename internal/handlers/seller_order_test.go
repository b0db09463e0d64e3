package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/example/feria/internal/models"
)

func TestApplyStatusConflictLeavesOrderUntouched(t *testing.T) {
	// DryRun never hits a database, so the guarded UPDATE matches zero
	// rows: the same outcome as a concurrent session moving the status
	// out from under this one.
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	order := &models.Order{Status: models.StatusPending}

	err = applyStatus(db, order, models.StatusConfirmed)

	assert.ErrorIs(t, err, errStatusConflict)
	assert.Equal(t, models.StatusPending, order.Status)
}
