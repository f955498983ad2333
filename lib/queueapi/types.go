// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueapi

import "time"

// TicketStatus is the server-reported state of a ticket. A completed
// ticket is never observed directly — the server simply stops listing
// it in summaries.
type TicketStatus string

const (
	// StatusWaiting means the ticket is in line; its position is
	// meaningful.
	StatusWaiting TicketStatus = "WAITING"
	// StatusBeingServed means it is this ticket's turn; position is
	// stale and must be ignored.
	StatusBeingServed TicketStatus = "BEING_SERVED"
)

// JoinResult is the payload of a successful join operation.
type JoinResult struct {
	// TicketNumber is the server-assigned opaque ticket identifier.
	TicketNumber string `json:"ticketNumber"`

	// Message is an optional human-readable confirmation from the
	// server, shown verbatim in the notice area.
	Message string `json:"message,omitempty"`
}

// TicketStatusResult is the payload of a status poll for one ticket.
type TicketStatusResult struct {
	Status   TicketStatus `json:"status"`
	Position int          `json:"position"`

	// EstimatedWaitMinutes is the server's own estimate, when it
	// reports one. Nil means the server sent no estimate; the client
	// always computes its local estimate regardless.
	EstimatedWaitMinutes *int `json:"estimatedWaitMinutes,omitempty"`

	// Note is optional server-supplied display text (for example the
	// calculation mode behind the estimate).
	Note string `json:"note,omitempty"`
}

// TicketSummary is one row of a staff queue summary.
type TicketSummary struct {
	TicketNumber string       `json:"ticketNumber"`
	Status       TicketStatus `json:"status"`
	Email        string       `json:"email,omitempty"`

	// JoinTime is epoch microseconds, as written by the queue service.
	JoinTime int64 `json:"joinTime"`
}

// JoinedAt converts the microsecond join timestamp to a time.Time.
func (t TicketSummary) JoinedAt() time.Time {
	return time.UnixMicro(t.JoinTime)
}

// Summary is the payload of a staff summary fetch: every not-completed
// ticket in the queue, oldest first. The client replaces its copy
// wholesale on each poll.
type Summary struct {
	Tickets []TicketSummary `json:"tickets"`
}

// CallNextResult is the payload of a call-next operation. Exactly one
// of ServedTicket and Message is populated: the served ticket when one
// was waiting, or the server's explanation (for example "Queue is
// empty") when none was.
type CallNextResult struct {
	ServedTicket *TicketSummary `json:"servedTicket,omitempty"`
	Message      string         `json:"message,omitempty"`
}
