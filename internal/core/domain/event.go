package domain

import "time"

// Event is a single organized event shown on the listing pages.
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	OrganizerID int64     `json:"organizerid"`
	Description string    `json:"description"`
}
