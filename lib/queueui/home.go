// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ST-2004/Queuescape/lib/validate"
)

// homeState is the visitor join form: pick a queue, enter an email,
// submit. Validation happens locally before any request is sent.
type homeState struct {
	queueInput textinput.Model
	emailInput textinput.Model
	focusIndex int
	fieldError string
	submitting bool
}

func newHomeState(defaultQueue string) homeState {
	queueInput := textinput.New()
	queueInput.Prompt = "Queue: "
	queueInput.Placeholder = "queue name"
	queueInput.CharLimit = 64
	queueInput.SetValue(defaultQueue)

	emailInput := textinput.New()
	emailInput.Prompt = "Email: "
	emailInput.Placeholder = "you@example.com"
	emailInput.CharLimit = 254

	state := homeState{
		queueInput: queueInput,
		emailInput: emailInput,
	}
	if defaultQueue != "" {
		state.focusIndex = 1
		state.emailInput.Focus()
	} else {
		state.queueInput.Focus()
	}
	return state
}

// focusedInputBlink returns the cursor blink command for the focused
// input, used as the program's Init command.
func (state homeState) focusedInputBlink() tea.Cmd {
	return textinput.Blink
}

func (app App) updateHome(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		var commands []tea.Cmd
		var cmd tea.Cmd
		app.home.queueInput, cmd = app.home.queueInput.Update(message)
		commands = append(commands, cmd)
		app.home.emailInput, cmd = app.home.emailInput.Update(message)
		commands = append(commands, cmd)
		return app, tea.Batch(commands...)
	}

	switch {
	case key.Matches(keyMessage, app.keys.StaffArea):
		// A still-valid session from an earlier sign-in skips the
		// form; staff calls would pass the gate anyway.
		if app.session.IsValid(context.Background()) {
			cmd := app.openStaff()
			return app, cmd
		}
		app.generation++
		app.view = viewStaffLogin
		app.login = newAuthState(false)
		cmd := app.login.emailInput.Focus()
		return app, cmd

	case key.Matches(keyMessage, app.keys.NextField):
		app.home.fieldError = ""
		if app.home.focusIndex == 0 {
			app.home.focusIndex = 1
			app.home.queueInput.Blur()
			cmd := app.home.emailInput.Focus()
			return app, cmd
		}
		app.home.focusIndex = 0
		app.home.emailInput.Blur()
		cmd := app.home.queueInput.Focus()
		return app, cmd

	case key.Matches(keyMessage, app.keys.Submit):
		return app.submitJoin()
	}

	var cmd tea.Cmd
	if app.home.focusIndex == 0 {
		app.home.queueInput, cmd = app.home.queueInput.Update(message)
	} else {
		app.home.emailInput, cmd = app.home.emailInput.Update(message)
	}
	return app, cmd
}

// submitJoin validates the form and, if it passes, issues the join
// request. Validation failures render inline and nothing is sent.
func (app App) submitJoin() (tea.Model, tea.Cmd) {
	if app.home.submitting {
		return app, nil
	}
	queueID := strings.TrimSpace(app.home.queueInput.Value())
	email := strings.TrimSpace(app.home.emailInput.Value())

	if queueID == "" {
		app.home.fieldError = "queue name is required"
		return app, nil
	}
	if err := validate.Email(email); err != nil {
		app.home.fieldError = err.Error()
		return app, nil
	}

	app.home.fieldError = ""
	app.home.submitting = true
	return app, app.joinCmd(queueID, email)
}

func (app App) joinCmd(queueID, email string) tea.Cmd {
	queue := app.queue
	return func() tea.Msg {
		result, err := queue.Join(context.Background(), queueID, email)
		return joinResultMsg{queueID: queueID, result: result, err: err}
	}
}

// handleJoinResult moves to the status view on success. The server may
// attach a message to the join result (for example when the email was
// already in the queue); it surfaces as a notice over the status view.
func (app App) handleJoinResult(message joinResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewHome {
		return app, nil
	}
	app.home.submitting = false
	if message.err != nil {
		app.logger.Error("join failed",
			"queue", message.queueID, "error", message.err)
		cmd := app.showNotice(message.err.Error(), true)
		return app, cmd
	}

	openCmd := app.openStatus(message.queueID, message.result.TicketNumber)
	noticeText := "Joined queue " + message.queueID + " as " + message.result.TicketNumber
	if message.result.Message != "" {
		noticeText = message.result.Message
	}
	noticeCmd := app.showNotice(noticeText, false)
	return app, tea.Batch(openCmd, noticeCmd)
}

func (app App) viewHome() string {
	var builder strings.Builder
	builder.WriteString(app.titleBar("QueueEscape"))
	builder.WriteString("\n\n")
	builder.WriteString(app.home.queueInput.View())
	builder.WriteString("\n")
	builder.WriteString(app.home.emailInput.View())
	builder.WriteString("\n")

	if app.home.fieldError != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(app.theme.ErrorText).
			Render(app.home.fieldError))
		builder.WriteString("\n")
	}
	if app.home.submitting {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(app.theme.FaintText).
			Render("joining..."))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(app.helpLine(
		app.keys.Submit, app.keys.NextField, app.keys.StaffArea, app.keys.Quit))
	return builder.String()
}
