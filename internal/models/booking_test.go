package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingExpiry(t *testing.T) {
	t.Parallel()

	entry := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	b := Booking{Seat: 7, Name: "Asha", Mobile: "9876543210", EntryTime: entry, Duration: 45}

	assert.Equal(t, entry.Add(45*time.Minute), b.ExpiresAt())

	testCases := []struct {
		name        string
		now         time.Time
		expired     bool
		minutesLeft int
	}{
		{name: "At entry", now: entry, expired: false, minutesLeft: 45},
		{name: "Partial minute rounds down", now: entry.Add(30 * time.Second), expired: false, minutesLeft: 44},
		{name: "Last second", now: entry.Add(45*time.Minute - time.Second), expired: false, minutesLeft: 0},
		{name: "Exactly at expiry", now: entry.Add(45 * time.Minute), expired: true, minutesLeft: 0},
		{name: "After expiry", now: entry.Add(2 * time.Hour), expired: true, minutesLeft: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expired, b.Expired(tc.now))
			assert.Equal(t, tc.minutesLeft, b.MinutesLeft(tc.now))
		})
	}
}
