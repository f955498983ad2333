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

// authState backs both the sign-in and sign-up forms; they differ only
// in the call they make and in how strictly the password is checked.
type authState struct {
	isSignup      bool
	emailInput    textinput.Model
	passwordInput textinput.Model
	focusIndex    int
	fieldError    string
	submitting    bool
}

func newAuthState(isSignup bool) authState {
	emailInput := textinput.New()
	emailInput.Prompt = "Email: "
	emailInput.Placeholder = "staff@example.com"
	emailInput.CharLimit = 254

	passwordInput := textinput.New()
	passwordInput.Prompt = "Password: "
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.CharLimit = 128

	return authState{
		isSignup:      isSignup,
		emailInput:    emailInput,
		passwordInput: passwordInput,
	}
}

// activeAuth returns a pointer to the state backing the current view.
func (app *App) activeAuth() *authState {
	if app.view == viewStaffSignup {
		return &app.signup
	}
	return &app.login
}

func (app App) updateAuth(message tea.Msg) (tea.Model, tea.Cmd) {
	state := app.activeAuth()

	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		var commands []tea.Cmd
		var cmd tea.Cmd
		state.emailInput, cmd = state.emailInput.Update(message)
		commands = append(commands, cmd)
		state.passwordInput, cmd = state.passwordInput.Update(message)
		commands = append(commands, cmd)
		return app, tea.Batch(commands...)
	}

	switch {
	case key.Matches(keyMessage, app.keys.SwitchTo):
		if app.view == viewStaffLogin {
			app.view = viewStaffSignup
			app.signup = newAuthState(true)
			cmd := app.signup.emailInput.Focus()
			return app, cmd
		}
		app.view = viewStaffLogin
		app.login = newAuthState(false)
		cmd := app.login.emailInput.Focus()
		return app, cmd

	case key.Matches(keyMessage, app.keys.NextField):
		state.fieldError = ""
		if state.focusIndex == 0 {
			state.focusIndex = 1
			state.emailInput.Blur()
			cmd := state.passwordInput.Focus()
			return app, cmd
		}
		state.focusIndex = 0
		state.passwordInput.Blur()
		cmd := state.emailInput.Focus()
		return app, cmd

	case key.Matches(keyMessage, app.keys.Submit):
		return app.submitAuth()
	}

	var cmd tea.Cmd
	if state.focusIndex == 0 {
		state.emailInput, cmd = state.emailInput.Update(message)
	} else {
		state.passwordInput, cmd = state.passwordInput.Update(message)
	}
	return app, cmd
}

// submitAuth validates the form locally and issues the sign-in or
// sign-up call. Sign-up enforces the password policy; sign-in only
// requires a non-empty password, since the policy may have changed
// after the account was created.
func (app App) submitAuth() (tea.Model, tea.Cmd) {
	state := app.activeAuth()
	if state.submitting {
		return app, nil
	}
	email := strings.TrimSpace(state.emailInput.Value())
	password := state.passwordInput.Value()

	if err := validate.Email(email); err != nil {
		state.fieldError = err.Error()
		return app, nil
	}
	if state.isSignup {
		if err := validate.Password(password); err != nil {
			state.fieldError = err.Error()
			return app, nil
		}
	} else if password == "" {
		state.fieldError = "password is required"
		return app, nil
	}

	state.fieldError = ""
	state.submitting = true
	return app, app.authCmd(state.isSignup, email, password)
}

func (app App) authCmd(signup bool, email, password string) tea.Cmd {
	identity := app.identity
	return func() tea.Msg {
		var err error
		if signup {
			err = identity.SignUp(context.Background(), email, password)
		} else {
			err = identity.LogIn(context.Background(), email, password)
		}
		return authResultMsg{signup: signup, email: email, err: err}
	}
}

// handleAuthResult routes a completed auth call. A successful sign-up
// does not sign the account in; it lands on the sign-in form with the
// email carried over.
func (app App) handleAuthResult(message authResultMsg) (tea.Model, tea.Cmd) {
	if app.view != viewStaffLogin && app.view != viewStaffSignup {
		return app, nil
	}
	state := app.activeAuth()
	state.submitting = false

	if message.err != nil {
		app.logger.Error("authentication failed",
			"signup", message.signup, "error", message.err)
		cmd := app.showNotice(message.err.Error(), true)
		return app, cmd
	}

	if message.signup {
		app.view = viewStaffLogin
		app.login = newAuthState(false)
		app.login.emailInput.SetValue(message.email)
		app.login.focusIndex = 1
		cmd := tea.Batch(
			app.login.passwordInput.Focus(),
			app.showNotice("Account created, please sign in", false),
		)
		return app, cmd
	}

	cmd := tea.Batch(
		app.openStaff(),
		app.showNotice("Signed in as "+message.email, false),
	)
	return app, cmd
}

func (app App) viewAuth(state authState) string {
	title := "Staff Sign In"
	switchHint := "sign up instead"
	if state.isSignup {
		title = "Staff Sign Up"
		switchHint = "sign in instead"
	}

	var builder strings.Builder
	builder.WriteString(app.titleBar(title))
	builder.WriteString("\n\n")
	builder.WriteString(state.emailInput.View())
	builder.WriteString("\n")
	builder.WriteString(state.passwordInput.View())
	builder.WriteString("\n")

	if state.fieldError != "" {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(app.theme.ErrorText).
			Render(state.fieldError))
		builder.WriteString("\n")
	}
	if state.submitting {
		builder.WriteString(lipgloss.NewStyle().
			Foreground(app.theme.FaintText).
			Render("contacting identity service..."))
		builder.WriteString("\n")
	}

	switchBinding := key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", switchHint),
	)
	builder.WriteString("\n")
	builder.WriteString(app.helpLine(
		app.keys.Submit, app.keys.NextField, switchBinding, app.keys.Back, app.keys.Quit))
	return builder.String()
}
