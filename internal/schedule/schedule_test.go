package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Presets(t *testing.T) {
	expr, err := Normalize("daily")
	require.NoError(t, err)
	assert.Equal(t, "0 3 * * *", expr)

	expr, err = Normalize("hourly")
	require.NoError(t, err)
	assert.Equal(t, "0 * * * *", expr)
}

func TestNormalize_CustomExpression(t *testing.T) {
	expr, err := Normalize("*/15 * * * *")
	require.NoError(t, err)
	assert.Equal(t, "*/15 * * * *", expr)
}

func TestNormalize_Invalid(t *testing.T) {
	_, err := Normalize("every tuesday")
	assert.Error(t, err)

	// 6-field (seconds) expressions are not accepted.
	_, err = Normalize("0 0 3 * * *")
	assert.Error(t, err)
}

func TestNextRun(t *testing.T) {
	from := time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC)
	next, err := NextRun("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC), next)
}

func TestValidateKeepN(t *testing.T) {
	require.NoError(t, ValidateKeepN(1))
	require.NoError(t, ValidateKeepN(30))

	err := ValidateKeepN(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention")

	assert.Error(t, ValidateKeepN(-3))
}

func TestPresetNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"daily", "hourly", "monthly", "weekly"}, PresetNames())
}
