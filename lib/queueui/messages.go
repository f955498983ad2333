// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"github.com/ST-2004/Queuescape/lib/queueapi"
	"github.com/ST-2004/Queuescape/lib/traffic"
)

// joinResultMsg is delivered when an asynchronous join call completes.
type joinResultMsg struct {
	queueID string
	result  *queueapi.JoinResult
	err     error
}

// statusTickMsg drives the ticket status poll loop. generation is the
// status view generation at schedule time; a tick from a torn-down
// view is discarded and does not reschedule.
type statusTickMsg struct {
	generation int
}

// statusResultMsg is delivered when a status fetch completes. seq
// orders fetches by send time so a slow earlier response cannot
// overwrite a newer one.
type statusResultMsg struct {
	generation int
	seq        int
	result     *queueapi.TicketStatusResult
	err        error
}

// staffTickMsg drives the staff summary poll loop.
type staffTickMsg struct {
	generation int
}

// summaryResultMsg is delivered when a staff summary fetch completes.
type summaryResultMsg struct {
	generation int
	seq        int
	summary    *queueapi.Summary
	err        error
}

// callNextResultMsg is delivered when a call-next action completes.
type callNextResultMsg struct {
	generation int
	result     *queueapi.CallNextResult
	err        error
}

// completeResultMsg is delivered when a complete action finishes.
type completeResultMsg struct {
	generation   int
	ticketNumber string
	err          error
}

// setPeriodResultMsg is delivered when a traffic-period change
// completes. The locally selected period is only updated on success.
type setPeriodResultMsg struct {
	generation int
	period     traffic.Period
	err        error
}

// authResultMsg is delivered when a sign-in or sign-up call completes.
type authResultMsg struct {
	signup bool
	email  string
	err    error
}

// noticeFadeMsg clears the transient notice bar after a fixed delay.
// The id guards against an old fade clearing a newer notice.
type noticeFadeMsg struct {
	id int
}
