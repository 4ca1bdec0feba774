package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartBound(t *testing.T) {
	tests := []struct {
		name          string
		lastConnected *int64
		want          string
	}{
		{
			name:          "never connected falls back to the fixed bound",
			lastConnected: nil,
			want:          "2021-12-05",
		},
		{
			name:          "single digit month and day are zero padded",
			lastConnected: int64Ptr(time.Date(2022, time.March, 7, 18, 30, 0, 0, time.Local).Unix()),
			want:          "2022-03-07",
		},
		{
			name:          "double digit month and day pass through",
			lastConnected: int64Ptr(time.Date(2022, time.November, 23, 2, 0, 0, 0, time.Local).Unix()),
			want:          "2022-11-23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startBound(tt.lastConnected))
		})
	}
}

func TestStartBound_IgnoresOtherWalletFields(t *testing.T) {
	// The bound depends on LastConnected alone.
	assert.Equal(t, fallbackStartDate, startBound(nil))
}

func TestFormatDisplayTime(t *testing.T) {
	at := time.Date(2022, time.March, 7, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "3/7/2022 9:05", formatDisplayTime(at.Unix()))

	at = time.Date(2022, time.December, 25, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "12/25/2022 23:59", formatDisplayTime(at.Unix()))
}
