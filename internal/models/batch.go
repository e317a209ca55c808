package models

import "time"

// Batch is a reporting-only time-window classification of an order's
// creation time. It never gates whether an order can be placed or moved
// through its lifecycle.
type Batch string

const (
	Batch1 Batch = "BATCH_1" // day window
	Batch2 Batch = "BATCH_2" // night window, wraps midnight
)

// Batch 1 covers [06:00, 18:00); Batch 2 covers the rest of the day.
const (
	Batch1StartHour = 6
	Batch1EndHour   = 18
)

// BatchForTime classifies t into exactly one batch using half-open hour
// intervals: 06:00 and 17:59 fall in Batch 1, 18:00 and 05:59 in Batch 2.
func BatchForTime(t time.Time) Batch {
	hour := t.Hour()
	if hour >= Batch1StartHour && hour < Batch1EndHour {
		return Batch1
	}
	return Batch2
}
