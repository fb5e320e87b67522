package srs

import (
	"math"
	"time"
)

// Defaults for a card with no prior review.
const (
	DefaultEase     = 2.5
	DefaultInterval = 1
	MinEase         = 1.3
)

// State is the scheduling state carried between reviews of one card.
type State struct {
	EaseFactor     float64
	IntervalDays   int
	NextReviewDate time.Time
}

// Initial returns the state assumed for a card that has never been reviewed.
func Initial() State {
	return State{EaseFactor: DefaultEase, IntervalDays: DefaultInterval}
}

// Next computes the state following one review, keyed only on the
// immediately preceding state (SM-2 variant with a boolean outcome).
// A correct answer grows the interval and ease; an incorrect one resets the
// interval to a day and shrinks ease, floored at MinEase.
func Next(prev State, correct bool, today time.Time) State {
	ease := prev.EaseFactor
	interval := prev.IntervalDays

	if correct {
		if interval <= 1 {
			interval = 6
		} else {
			interval = int(math.Floor(float64(interval) * ease))
		}
		ease += 0.1
	} else {
		interval = 1
		ease -= 0.2
	}
	if ease < MinEase {
		ease = MinEase
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return State{
		EaseFactor:     ease,
		IntervalDays:   interval,
		NextReviewDate: day.AddDate(0, 0, interval),
	}
}
