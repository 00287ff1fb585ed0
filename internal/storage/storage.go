package storage

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSeatOccupied    = errors.New("seat already booked")
)
