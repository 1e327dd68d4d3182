package tzoffset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(v int) *int { return &v }

func TestLabel(t *testing.T) {
	tests := []struct {
		offset *int
		want   string
	}{
		{nil, "-"},
		{ptr(0), "GMT+00:00"},
		{ptr(-14400), "GMT-04:00"},
		{ptr(7200), "GMT+02:00"},
		{ptr(19800), "GMT+05:30"},
		{ptr(-34200), "GMT-09:30"},
		{ptr(45900), "GMT+12:45"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.offset))
	}
}

func TestNowAt(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	_, ok := NowAt(nil, now)
	assert.False(t, ok)

	local, ok := NowAt(ptr(-14400), now)
	assert.True(t, ok)
	assert.Equal(t, 8, local.Hour())
	assert.True(t, local.Equal(now))
	name, offset := local.Zone()
	assert.Equal(t, "GMT-04:00", name)
	assert.Equal(t, -14400, offset)
}
