package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-10-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024/10/31", "2024-13-01", "2024-02-30", "20241031"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, ErrInvalidInput), bad)
	}
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", from.Format(DateLayout))
	assert.Equal(t, "2024-02-29", to.Format(DateLayout))

	_, _, err = MonthRange("2024-2")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
