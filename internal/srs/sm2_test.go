package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bporter/mcattrainer/internal/srs"
)

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func TestNext_FirstReviewCorrect(t *testing.T) {
	next := srs.Next(srs.Initial(), true, today)

	assert.Equal(t, 6, next.IntervalDays, "first correct review jumps to 6 days")
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), next.NextReviewDate)
}

func TestNext_SecondReviewCorrect(t *testing.T) {
	prev := srs.State{EaseFactor: 2.6, IntervalDays: 6}

	next := srs.Next(prev, true, today)

	assert.Equal(t, 15, next.IntervalDays, "6 * 2.6 floored")
	assert.InDelta(t, 2.7, next.EaseFactor, 1e-9)
}

func TestNext_IncorrectResetsInterval(t *testing.T) {
	prev := srs.State{EaseFactor: 2.7, IntervalDays: 15}

	next := srs.Next(prev, false, today)

	assert.Equal(t, 1, next.IntervalDays)
	assert.InDelta(t, 2.5, next.EaseFactor, 1e-9)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), next.NextReviewDate)
}

func TestNext_EaseFloor(t *testing.T) {
	prev := srs.State{EaseFactor: 1.35, IntervalDays: 4}

	next := srs.Next(prev, false, today)

	assert.InDelta(t, 1.3, next.EaseFactor, 1e-9, "ease is floored, not pushed below 1.3")

	// Repeated failures stay on the floor.
	for i := 0; i < 5; i++ {
		next = srs.Next(next, false, today)
		assert.InDelta(t, 1.3, next.EaseFactor, 1e-9)
		assert.Equal(t, 1, next.IntervalDays)
	}
}

func TestNext_IntervalGrowthSequence(t *testing.T) {
	st := srs.Initial()

	st = srs.Next(st, true, today)
	assert.Equal(t, 6, st.IntervalDays)

	st = srs.Next(st, true, today)
	assert.Equal(t, 15, st.IntervalDays) // floor(6 * 2.6)

	st = srs.Next(st, true, today)
	assert.Equal(t, 40, st.IntervalDays) // floor(15 * 2.7)
}

func TestNext_CorrectAfterLapse(t *testing.T) {
	// A lapsed card restarts the interval ladder at 6.
	lapsed := srs.Next(srs.State{EaseFactor: 2.0, IntervalDays: 30}, false, today)
	assert.Equal(t, 1, lapsed.IntervalDays)

	recovered := srs.Next(lapsed, true, today)
	assert.Equal(t, 6, recovered.IntervalDays)
	assert.InDelta(t, 1.9, recovered.EaseFactor, 1e-9)
}
