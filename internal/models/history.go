package models

import "time"

type HistoryEntry struct {
	ID         int64     `json:"id"`
	Query      string    `json:"query"`
	Display    string    `json:"display"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	LookedUpAt time.Time `json:"looked_up_at"`
}
