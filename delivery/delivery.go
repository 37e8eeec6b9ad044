// Package delivery holds the delivery-window rules shared by the cart and the
// order service: duration bounds, the max-duration reduction, ETA projection
// and the human-readable duration strings shown to customers.
package delivery

import (
	"time"
)

// Durations are whole minutes.
const (
	DefaultDuration = 1440
	MinDuration     = 30
	MaxDuration     = 10080
)

// ValidDuration reports whether minutes is an allowed category delivery duration.
func ValidDuration(minutes int) bool {
	return minutes >= MinDuration && minutes <= MaxDuration
}

// Longest returns the largest positive duration, or DefaultDuration when none is positive.
func Longest(durations ...int) int {
	longest := 0
	for _, d := range durations {
		if d > longest {
			longest = d
		}
	}
	if longest == 0 {
		return DefaultDuration
	}
	return longest
}

// EstimatedDate projects from by exactly minutes.
func EstimatedDate(from time.Time, minutes int) time.Time {
	return from.Add(time.Duration(minutes) * time.Minute)
}

// CategoryWindow is one category's contribution to a delivery estimate.
type CategoryWindow struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

// Estimate is the delivery projection for a set of items.
type Estimate struct {
	MaxDeliveryDuration     int              `json:"maxDeliveryDuration"`
	MaxDeliveryDurationText string           `json:"maxDeliveryDurationText"`
	EstimatedDeliveryDate   time.Time        `json:"estimatedDeliveryDate"`
	Categories              []CategoryWindow `json:"categories"`
}

// Estimator accumulates category windows, keeping one entry per category name.
type Estimator struct {
	seen    map[string]bool
	windows []CategoryWindow
}

func (e *Estimator) Add(name string, duration int) {
	if duration <= 0 {
		return
	}
	if e.seen == nil {
		e.seen = make(map[string]bool)
	}
	if e.seen[name] {
		return
	}
	e.seen[name] = true
	e.windows = append(e.windows, CategoryWindow{Name: name, Duration: duration})
}

func (e *Estimator) Estimate(now time.Time, lang Lang) Estimate {
	durations := make([]int, 0, len(e.windows))
	for _, w := range e.windows {
		durations = append(durations, w.Duration)
	}
	longest := Longest(durations...)
	windows := e.windows
	if windows == nil {
		windows = []CategoryWindow{}
	}
	return Estimate{
		MaxDeliveryDuration:     longest,
		MaxDeliveryDurationText: FormatDuration(longest, lang),
		EstimatedDeliveryDate:   EstimatedDate(now, longest),
		Categories:              windows,
	}
}
