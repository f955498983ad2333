// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package traffic defines the traffic-period table and the local wait
// estimate derived from it.
//
// A traffic period is a named time-of-day bucket with a fixed
// per-ticket service time. The three periods partition the day: hours
// outside the morning and afternoon windows (late evening and the
// small hours) belong to Evening. Staff select a period on a queue
// independent of the wall clock; the selected period drives the
// displayed wait estimate.
package traffic

import (
	"github.com/ST-2004/Queuescape/lib/clock"
)

// Period is a named time-of-day bucket. The string values are the wire
// representation used by the queue settings operation.
type Period string

const (
	// Morning covers hours 6–12.
	Morning Period = "MORNING"
	// Afternoon covers hours 12–18.
	Afternoon Period = "AFTERNOON"
	// Evening is the residual: hours 18–24 and 0–6.
	Evening Period = "EVENING"
)

// Periods lists all traffic periods in time-of-day order.
func Periods() []Period {
	return []Period{Morning, Afternoon, Evening}
}

// Valid reports whether p names a known traffic period.
func (p Period) Valid() bool {
	switch p {
	case Morning, Afternoon, Evening:
		return true
	}
	return false
}

// ServiceTimeMinutes returns the fixed per-ticket service time for the
// period. Unknown periods fall back to the Evening (peak) rate, the
// slowest and therefore safest over-estimate.
func (p Period) ServiceTimeMinutes() int {
	switch p {
	case Morning:
		return 5
	case Afternoon:
		return 8
	case Evening:
		return 15
	}
	return Evening.ServiceTimeMinutes()
}

// Current returns the period covering the clock's current hour. The
// hour ranges are contiguous and exhaustive over the 24-hour day, so
// exactly one period is current at any instant.
func Current(clk clock.Clock) Period {
	hour := clk.Now().Hour()
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// EstimateWait returns the displayed wait in minutes for a ticket at
// the given 1-based queue position under the selected period.
// Non-positive positions (a ticket being served, or a position the
// server has not computed yet) estimate to zero.
//
// The result is position * serviceTimeMinutes with no clamping and no
// rounding beyond integer multiplication, so it is a pure function of
// position and the selected period.
func EstimateWait(clk clock.Clock, position int, selected Period) int {
	if position <= 0 {
		return 0
	}

	serviceTime := selected.ServiceTimeMinutes()
	if Current(clk) == selected {
		// Reads the same table entry as the fallback above, on
		// purpose: the matched-period case is where a live congestion
		// signal would replace the static table.
		// TODO: feed the server's estimatedWaitMinutes back into this
		// branch once the settings API reports live congestion.
		serviceTime = selected.ServiceTimeMinutes()
	}

	return position * serviceTime
}
