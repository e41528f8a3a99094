package downdetect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_IsAvailable_WhenAllChecksPass_ReturnsNil(t *testing.T) {
	service := NewDowndetectService(func() error { return nil }, func() error { return nil })

	assert.NoError(t, service.IsAvailable())
}

func Test_IsAvailable_WhenDatabaseDown_ReportsDatabase(t *testing.T) {
	service := NewDowndetectService(
		func() error { return errors.New("connection refused") },
		func() error { return nil },
	)

	err := service.IsAvailable()

	assert.ErrorContains(t, err, "database check failed")
}

func Test_IsAvailable_WhenCacheCheckPanics_ReturnsError(t *testing.T) {
	service := NewDowndetectService(
		func() error { return nil },
		func() error { panic("valkey client not initialized") },
	)

	err := service.IsAvailable()

	assert.ErrorContains(t, err, "cache connection test panicked")
}
