// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ST-2004/Queuescape/lib/clock"
	"github.com/ST-2004/Queuescape/lib/queueapi"
	"github.com/ST-2004/Queuescape/lib/traffic"
)

type statusPhase int

const (
	statusLoading statusPhase = iota
	statusReady
	statusError
)

// statusState tracks one ticket in one queue. The view polls the
// server on a fixed interval and renders the latest applied response.
type statusState struct {
	queueID      string
	ticketNumber string

	// generation is the app generation at mount time. Ticks and
	// results from other generations belong to a torn-down view.
	generation int
	// nextSeq numbers outgoing fetches; lastApplied is the highest
	// sequence whose response has been applied. A response with
	// seq <= lastApplied arrived out of order and is discarded.
	nextSeq     int
	lastApplied int

	phase statusPhase
	spin  spinner.Model

	status         queueapi.TicketStatus
	position       int
	serverEstimate *int
	note           string
	lastError      string

	// period is the traffic period used for the local wait estimate
	// when the server does not provide one. It is the wall-clock
	// period at mount time.
	period traffic.Period
}

func newStatusState(queueID, ticketNumber string, generation int, clk clock.Clock) statusState {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return statusState{
		queueID:      queueID,
		ticketNumber: ticketNumber,
		generation:   generation,
		nextSeq:      1,
		phase:        statusLoading,
		spin:         spin,
		period:       traffic.Current(clk),
	}
}

// fetchStatusCmd issues one status fetch, stamped with the current
// generation and the next sequence number.
func (app *App) fetchStatusCmd() tea.Cmd {
	generation := app.status.generation
	seq := app.status.nextSeq
	app.status.nextSeq++

	queue := app.queue
	queueID := app.status.queueID
	ticketNumber := app.status.ticketNumber
	return func() tea.Msg {
		result, err := queue.Status(context.Background(), queueID, ticketNumber)
		return statusResultMsg{generation: generation, seq: seq, result: result, err: err}
	}
}

// statusTickCmd schedules the next poll tick for the current
// generation.
func (app App) statusTickCmd() tea.Cmd {
	generation := app.status.generation
	return tea.Tick(app.statusPollInterval, func(time.Time) tea.Msg {
		return statusTickMsg{generation: generation}
	})
}

// handleStatusTick fires a fetch and reschedules. A tick carrying a
// stale generation is dropped without rescheduling, which is how a
// poll loop dies after navigation.
func (app App) handleStatusTick(message statusTickMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStatus || message.generation != app.status.generation {
		return app, nil
	}
	cmd := tea.Batch(app.fetchStatusCmd(), app.statusTickCmd())
	return app, cmd
}

// handleStatusResult applies a fetch response. Responses from a stale
// generation or with a sequence at or below the last applied one are
// discarded, so a slow early response can never overwrite a newer one.
func (app App) handleStatusResult(message statusResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStatus || message.generation != app.status.generation {
		return app, nil
	}
	if message.seq <= app.status.lastApplied {
		return app, nil
	}
	app.status.lastApplied = message.seq

	if message.err != nil {
		app.logger.Error("status fetch failed",
			"queue", app.status.queueID,
			"ticket", app.status.ticketNumber,
			"error", message.err)
		app.status.phase = statusError
		app.status.lastError = message.err.Error()
		return app, nil
	}

	app.status.phase = statusReady
	app.status.lastError = ""
	app.status.status = message.result.Status
	app.status.position = message.result.Position
	app.status.serverEstimate = message.result.EstimatedWaitMinutes
	app.status.note = message.result.Note
	return app, nil
}

func (app App) updateStatus(message tea.Msg) (tea.Model, tea.Cmd) {
	// All interaction on this view is navigation, handled globally.
	return app, nil
}

// waitEstimateMinutes returns the wait estimate to render: the
// server's figure when present, otherwise the local traffic-period
// estimate.
func (state statusState) waitEstimateMinutes(clk clock.Clock) int {
	if state.serverEstimate != nil {
		return *state.serverEstimate
	}
	return traffic.EstimateWait(clk, state.position, state.period)
}

func (app App) viewStatus() string {
	var builder strings.Builder
	builder.WriteString(app.titleBar("Ticket " + app.status.ticketNumber))
	builder.WriteString("\n\n")

	accent := lipgloss.NewStyle().Foreground(app.theme.Accent)
	faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)

	builder.WriteString(faint.Render("Queue: "))
	builder.WriteString(accent.Render(app.status.queueID))
	builder.WriteString("\n\n")

	switch app.status.phase {
	case statusLoading:
		builder.WriteString(app.status.spin.View())
		builder.WriteString(" fetching ticket status...")
		builder.WriteString("\n")

	case statusError:
		builder.WriteString(lipgloss.NewStyle().
			Foreground(app.theme.ErrorText).
			Render("Could not reach the queue: " + app.status.lastError))
		builder.WriteString("\n")
		builder.WriteString(faint.Render("Retrying on the next poll."))
		builder.WriteString("\n")

	case statusReady:
		statusStyle := lipgloss.NewStyle().
			Foreground(app.theme.StatusColor(string(app.status.status))).
			Bold(true)
		if app.status.status == queueapi.StatusBeingServed {
			builder.WriteString(statusStyle.Render("It's your turn!"))
			builder.WriteString("\n")
			builder.WriteString("Please head to the service desk.")
			builder.WriteString("\n")
		} else {
			builder.WriteString(faint.Render("Status: "))
			builder.WriteString(statusStyle.Render(string(app.status.status)))
			builder.WriteString("\n")
			builder.WriteString(faint.Render("Position: "))
			builder.WriteString(fmt.Sprintf("%d", app.status.position))
			builder.WriteString("\n")
			builder.WriteString(faint.Render("Estimated wait: "))
			builder.WriteString(fmt.Sprintf("%d min", app.status.waitEstimateMinutes(app.clock)))
			builder.WriteString(faint.Render(" (" + string(app.status.period) + " traffic)"))
			builder.WriteString("\n")
		}
		if app.status.note != "" {
			builder.WriteString(faint.Render(app.status.note))
			builder.WriteString("\n")
		}
	}

	builder.WriteString("\n")
	builder.WriteString(app.helpLine(app.keys.Back, app.keys.Quit))
	return builder.String()
}
