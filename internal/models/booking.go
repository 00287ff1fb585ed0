package models

import "time"

type Booking struct {
	Seat      int       `json:"seat_number"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	EntryTime time.Time `json:"entry_time"`
	Duration  int       `json:"duration_minutes"`
}

func (b Booking) ExpiresAt() time.Time {
	return b.EntryTime.Add(time.Duration(b.Duration) * time.Minute)
}

// Expired reports whether the booking's time is over at now.
func (b Booking) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt())
}

// MinutesLeft rounds down, so a booking with 90 seconds left reports 1.
func (b Booking) MinutesLeft(now time.Time) int {
	left := b.ExpiresAt().Sub(now)
	if left <= 0 {
		return 0
	}
	return int(left / time.Minute)
}
