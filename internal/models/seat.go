package models

type SeatStatus struct {
	Seat        int      `json:"seat_number"`
	Row         int      `json:"row"`
	Col         int      `json:"col"`
	Occupied    bool     `json:"occupied"`
	Booking     *Booking `json:"booking,omitempty"`
	MinutesLeft int      `json:"minutes_left"`
}
