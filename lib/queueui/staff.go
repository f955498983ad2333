// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ST-2004/Queuescape/lib/queueapi"
	"github.com/ST-2004/Queuescape/lib/traffic"
)

// ErrNoActiveTicket is returned when a complete action is requested
// while no ticket is being served. The check is local; no request is
// sent.
var ErrNoActiveTicket = errors.New("no ticket is currently being served")

// staffState is the staff dashboard: a live summary of one queue plus
// the call-next, complete, and traffic-period controls.
type staffState struct {
	// generation is the app generation at mount time, bumped again on
	// every queue switch so in-flight summaries for the previous
	// queue are orphaned.
	generation  int
	nextSeq     int
	lastApplied int

	queueInput     textinput.Model
	selectingQueue bool

	activeQueueID string
	tickets       []queueapi.TicketSummary
	loaded        bool
	lastError     string

	// selectedPeriod is the traffic period last confirmed by the
	// server, used for the per-ticket wait estimates.
	selectedPeriod traffic.Period
}

func newStaffState(generation int) staffState {
	queueInput := textinput.New()
	queueInput.Prompt = "Queue: "
	queueInput.Placeholder = "queue to manage"
	queueInput.CharLimit = 64
	return staffState{
		generation:     generation,
		nextSeq:        1,
		queueInput:     queueInput,
		selectingQueue: true,
		selectedPeriod: traffic.Evening,
	}
}

// currentlyServing returns the first ticket reported as being served,
// or nil when the desk is idle.
func (state staffState) currentlyServing() *queueapi.TicketSummary {
	for index := range state.tickets {
		if state.tickets[index].Status == queueapi.StatusBeingServed {
			return &state.tickets[index]
		}
	}
	return nil
}

// waitingPosition returns the 1-based position of the ticket at the
// given index among the waiting tickets, or 0 when it is not waiting.
func (state staffState) waitingPosition(index int) int {
	if state.tickets[index].Status != queueapi.StatusWaiting {
		return 0
	}
	position := 0
	for i := 0; i <= index; i++ {
		if state.tickets[i].Status == queueapi.StatusWaiting {
			position++
		}
	}
	return position
}

// fetchSummaryCmd issues one summary fetch for the active queue.
func (app *App) fetchSummaryCmd() tea.Cmd {
	generation := app.staff.generation
	seq := app.staff.nextSeq
	app.staff.nextSeq++

	queue := app.queue
	queueID := app.staff.activeQueueID
	return func() tea.Msg {
		summary, err := queue.StaffSummary(context.Background(), queueID)
		return summaryResultMsg{generation: generation, seq: seq, summary: summary, err: err}
	}
}

func (app App) staffTickCmd() tea.Cmd {
	generation := app.staff.generation
	return tea.Tick(app.staffPollInterval, func(time.Time) tea.Msg {
		return staffTickMsg{generation: generation}
	})
}

func (app App) handleStaffTick(message staffTickMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStaff || message.generation != app.staff.generation {
		return app, nil
	}
	cmd := tea.Batch(app.fetchSummaryCmd(), app.staffTickCmd())
	return app, cmd
}

// handleSummaryResult replaces the ticket list wholesale with the
// server's snapshot. Stale generations and out-of-order sequences are
// discarded.
func (app App) handleSummaryResult(message summaryResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStaff || message.generation != app.staff.generation {
		return app, nil
	}
	if message.seq <= app.staff.lastApplied {
		return app, nil
	}
	app.staff.lastApplied = message.seq

	if message.err != nil {
		app.logger.Error("summary fetch failed",
			"queue", app.staff.activeQueueID, "error", message.err)
		app.staff.lastError = message.err.Error()
		return app, nil
	}
	app.staff.lastError = ""
	app.staff.loaded = true
	app.staff.tickets = message.summary.Tickets
	return app, nil
}

// selectQueue activates the queue named in the input and starts its
// poll loop. A blank name is a silent no-op.
func (app *App) selectQueue() tea.Cmd {
	queueID := strings.TrimSpace(app.staff.queueInput.Value())
	if queueID == "" {
		return nil
	}
	app.generation++
	nextState := newStaffState(app.generation)
	nextState.activeQueueID = queueID
	nextState.selectingQueue = false
	nextState.selectedPeriod = app.staff.selectedPeriod
	nextState.queueInput.SetValue(queueID)
	app.staff = nextState
	return tea.Batch(app.fetchSummaryCmd(), app.staffTickCmd())
}

func (app App) callNextCmd() tea.Cmd {
	generation := app.staff.generation
	queue := app.queue
	queueID := app.staff.activeQueueID
	return func() tea.Msg {
		result, err := queue.CallNext(context.Background(), queueID)
		return callNextResultMsg{generation: generation, result: result, err: err}
	}
}

func (app App) completeCmd(ticketNumber string) tea.Cmd {
	generation := app.staff.generation
	queue := app.queue
	queueID := app.staff.activeQueueID
	return func() tea.Msg {
		err := queue.Complete(context.Background(), queueID, ticketNumber)
		return completeResultMsg{generation: generation, ticketNumber: ticketNumber, err: err}
	}
}

func (app App) setPeriodCmd(period traffic.Period) tea.Cmd {
	generation := app.staff.generation
	queue := app.queue
	queueID := app.staff.activeQueueID
	return func() tea.Msg {
		err := queue.SetTrafficPeriod(context.Background(), queueID, string(period))
		return setPeriodResultMsg{generation: generation, period: period, err: err}
	}
}

// handleCallNextResult surfaces the outcome and refetches immediately
// so the dashboard reflects the change before the next poll.
func (app App) handleCallNextResult(message callNextResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStaff || message.generation != app.staff.generation {
		return app, nil
	}
	if message.err != nil {
		app.logger.Error("call next failed",
			"queue", app.staff.activeQueueID, "error", message.err)
		cmd := app.showNotice(message.err.Error(), true)
		return app, cmd
	}
	if message.result.ServedTicket == nil {
		// The server reports an empty queue with a message rather
		// than an error; show it as-is.
		cmd := app.showNotice(message.result.Message, false)
		return app, cmd
	}
	cmd := tea.Batch(
		app.showNotice("Now serving "+message.result.ServedTicket.TicketNumber, false),
		app.fetchSummaryCmd(),
	)
	return app, cmd
}

func (app App) handleCompleteResult(message completeResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStaff || message.generation != app.staff.generation {
		return app, nil
	}
	if message.err != nil {
		app.logger.Error("complete failed",
			"queue", app.staff.activeQueueID,
			"ticket", message.ticketNumber,
			"error", message.err)
		cmd := app.showNotice(message.err.Error(), true)
		return app, cmd
	}
	cmd := tea.Batch(
		app.showNotice("Completed "+message.ticketNumber, false),
		app.fetchSummaryCmd(),
	)
	return app, cmd
}

func (app App) handleSetPeriodResult(message setPeriodResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStaff || message.generation != app.staff.generation {
		return app, nil
	}
	if message.err != nil {
		app.logger.Error("traffic period change failed",
			"queue", app.staff.activeQueueID,
			"period", string(message.period),
			"error", message.err)
		cmd := app.showNotice(message.err.Error(), true)
		return app, cmd
	}
	app.staff.selectedPeriod = message.period
	cmd := app.showNotice("Traffic period set to "+string(message.period), false)
	return app, cmd
}

func (app App) updateStaff(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		app.staff.queueInput, cmd = app.staff.queueInput.Update(message)
		return app, cmd
	}

	if app.staff.selectingQueue {
		if key.Matches(keyMessage, app.keys.Submit) {
			cmd := app.selectQueue()
			return app, cmd
		}
		var cmd tea.Cmd
		app.staff.queueInput, cmd = app.staff.queueInput.Update(message)
		return app, cmd
	}

	switch {
	case key.Matches(keyMessage, app.keys.CallNext):
		return app, app.callNextCmd()

	case key.Matches(keyMessage, app.keys.Complete):
		serving := app.staff.currentlyServing()
		if serving == nil {
			cmd := app.showNotice(ErrNoActiveTicket.Error(), true)
			return app, cmd
		}
		return app, app.completeCmd(serving.TicketNumber)

	case key.Matches(keyMessage, app.keys.SwitchQueue):
		app.staff.selectingQueue = true
		cmd := app.staff.queueInput.Focus()
		return app, cmd

	case key.Matches(keyMessage, app.keys.PeriodMorning):
		return app, app.setPeriodCmd(traffic.Morning)

	case key.Matches(keyMessage, app.keys.PeriodAfternoon):
		return app, app.setPeriodCmd(traffic.Afternoon)

	case key.Matches(keyMessage, app.keys.PeriodEvening):
		return app, app.setPeriodCmd(traffic.Evening)

	case key.Matches(keyMessage, app.keys.SignOut):
		app.identity.SignOut()
		app.goHome()
		cmd := app.showNotice("Signed out", false)
		return app, cmd
	}
	return app, nil
}

func (app App) viewStaff() string {
	var builder strings.Builder
	builder.WriteString(app.titleBar("Staff Dashboard"))
	builder.WriteString("\n\n")

	faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)
	accent := lipgloss.NewStyle().Foreground(app.theme.Accent)

	if app.staff.selectingQueue {
		builder.WriteString(app.staff.queueInput.View())
		builder.WriteString("\n\n")
		builder.WriteString(app.helpLine(app.keys.Submit, app.keys.Back, app.keys.Quit))
		return builder.String()
	}

	builder.WriteString(faint.Render("Managing: "))
	builder.WriteString(accent.Render(app.staff.activeQueueID))
	builder.WriteString(faint.Render("   Traffic: "))
	builder.WriteString(accent.Render(string(app.staff.selectedPeriod)))
	builder.WriteString("\n\n")

	if app.staff.lastError != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(app.theme.ErrorText).
			Render("Summary unavailable: " + app.staff.lastError))
		builder.WriteString("\n\n")
	}

	switch {
	case !app.staff.loaded:
		builder.WriteString(faint.Render("Loading queue summary..."))
		builder.WriteString("\n")
	case len(app.staff.tickets) == 0:
		builder.WriteString(faint.Render("The queue is empty."))
		builder.WriteString("\n")
	default:
		builder.WriteString(app.viewStaffTable())
	}

	builder.WriteString("\n")
	builder.WriteString(app.helpLine(
		app.keys.CallNext, app.keys.Complete, app.keys.SwitchQueue,
		app.keys.PeriodMorning, app.keys.PeriodAfternoon, app.keys.PeriodEvening,
		app.keys.SignOut, app.keys.Back))
	return builder.String()
}

// viewStaffTable renders the ticket snapshot. Emails are truncated to
// keep rows on one line in narrow terminals.
func (app App) viewStaffTable() string {
	emailWidth := 28
	if app.width > 0 && app.width < 80 {
		emailWidth = 16
	}

	header := lipgloss.NewStyle().Foreground(app.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(app.theme.FaintText)

	var builder strings.Builder
	builder.WriteString(header.Render(fmt.Sprintf(
		"%-10s %-*s %-13s %-8s %s",
		"TICKET", emailWidth, "EMAIL", "STATUS", "WAIT", "JOINED")))
	builder.WriteString("\n")

	for index, ticket := range app.staff.tickets {
		statusStyle := lipgloss.NewStyle().
			Foreground(app.theme.StatusColor(string(ticket.Status)))

		wait := "-"
		if position := app.staff.waitingPosition(index); position > 0 {
			minutes := traffic.EstimateWait(app.clock, position, app.staff.selectedPeriod)
			wait = fmt.Sprintf("%d min", minutes)
		}

		line := fmt.Sprintf("%-10s %-*s %s %-8s %s",
			ticket.TicketNumber,
			emailWidth, ansi.Truncate(ticket.Email, emailWidth, "…"),
			statusStyle.Render(fmt.Sprintf("%-13s", ticket.Status)),
			wait,
			faint.Render(ticket.JoinedAt().Format("15:04:05")))
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}
