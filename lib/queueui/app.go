// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ST-2004/Queuescape/lib/clock"
	"github.com/ST-2004/Queuescape/lib/queueapi"
)

// view identifies the active screen. Exactly one view is mounted at a
// time; the status and staff pollers therefore never run concurrently.
type view int

const (
	viewHome view = iota
	viewStatus
	viewStaff
	viewStaffLogin
	viewStaffSignup
)

// QueueService is the slice of the queue API client the views consume.
// *queueapi.Client satisfies it; tests substitute fakes.
type QueueService interface {
	Join(ctx context.Context, queueID, email string) (*queueapi.JoinResult, error)
	Status(ctx context.Context, queueID, ticketNumber string) (*queueapi.TicketStatusResult, error)
	StaffSummary(ctx context.Context, queueID string) (*queueapi.Summary, error)
	CallNext(ctx context.Context, queueID string) (*queueapi.CallNextResult, error)
	Complete(ctx context.Context, queueID, ticketNumber string) error
	SetTrafficPeriod(ctx context.Context, queueID string, period string) error
}

// IdentityService is the slice of the identity client the auth forms
// consume. *identity.Client satisfies it.
type IdentityService interface {
	LogIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string) error
	SignOut()
}

// SessionInfo answers whether a staff session is currently valid.
// *session.Gate satisfies it.
type SessionInfo interface {
	IsValid(ctx context.Context) bool
}

// Options configures the App.
type Options struct {
	Queue    QueueService
	Identity IdentityService
	Session  SessionInfo
	Clock    clock.Clock

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// DefaultQueue pre-fills the queue name in the join form.
	DefaultQueue string

	// StatusPollInterval is how often the status view re-fetches.
	StatusPollInterval time.Duration
	// StaffPollInterval is how often the staff view re-fetches.
	StaffPollInterval time.Duration
	// NoticeFade is how long transient notices stay visible.
	NoticeFade time.Duration
}

// App is the top-level bubbletea model.
type App struct {
	queue    QueueService
	identity IdentityService
	session  SessionInfo
	clock    clock.Clock
	logger   *slog.Logger

	keys  KeyMap
	theme Theme

	statusPollInterval time.Duration
	staffPollInterval  time.Duration
	noticeFade         time.Duration

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int

	// Active view and per-view state.
	view   view
	home   homeState
	status statusState
	staff  staffState
	login  authState
	signup authState

	// generation counts navigations. Poll ticks and fetch results
	// carry the generation current when they were issued; anything
	// from an older generation belongs to a torn-down view and is
	// discarded.
	generation int

	// Transient notice bar, cleared by noticeFadeMsg.
	notice      string
	noticeIsErr bool
	noticeID    int
}

// New creates the App on the Home view.
func New(options Options) App {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}

	app := App{
		queue:              options.Queue,
		identity:           options.Identity,
		session:            options.Session,
		clock:              clk,
		logger:             logger,
		keys:               DefaultKeyMap,
		theme:              DefaultTheme,
		statusPollInterval: options.StatusPollInterval,
		staffPollInterval:  options.StaffPollInterval,
		noticeFade:         options.NoticeFade,
		view:               viewHome,
	}
	app.home = newHomeState(options.DefaultQueue)
	app.login = newAuthState(false)
	app.signup = newAuthState(true)
	return app
}

// Init implements tea.Model.
func (app App) Init() tea.Cmd {
	return app.home.focusedInputBlink()
}

// Update implements tea.Model. Typed result and tick messages route to
// the view that issued them (guarded by generation); key messages
// route to the active view.
func (app App) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		app.width = message.Width
		app.height = message.Height
		return app, nil

	case noticeFadeMsg:
		if message.id == app.noticeID {
			app.notice = ""
			app.noticeIsErr = false
		}
		return app, nil

	case joinResultMsg:
		return app.handleJoinResult(message)

	case statusTickMsg:
		return app.handleStatusTick(message)

	case statusResultMsg:
		return app.handleStatusResult(message)

	case staffTickMsg:
		return app.handleStaffTick(message)

	case summaryResultMsg:
		return app.handleSummaryResult(message)

	case callNextResultMsg:
		return app.handleCallNextResult(message)

	case completeResultMsg:
		return app.handleCompleteResult(message)

	case setPeriodResultMsg:
		return app.handleSetPeriodResult(message)

	case authResultMsg:
		return app.handleAuthResult(message)

	case spinner.TickMsg:
		if app.view == viewStatus && app.status.phase == statusLoading {
			var cmd tea.Cmd
			app.status.spin, cmd = app.status.spin.Update(message)
			return app, cmd
		}
		return app, nil

	case tea.KeyMsg:
		if key.Matches(message, app.keys.Quit) {
			return app, tea.Quit
		}
		if key.Matches(message, app.keys.Back) && app.view != viewHome {
			app.goHome()
			return app, nil
		}
	}

	switch app.view {
	case viewHome:
		return app.updateHome(message)
	case viewStatus:
		return app.updateStatus(message)
	case viewStaff:
		return app.updateStaff(message)
	case viewStaffLogin, viewStaffSignup:
		return app.updateAuth(message)
	}
	return app, nil
}

// View implements tea.Model.
func (app App) View() string {
	var body string
	switch app.view {
	case viewHome:
		body = app.viewHome()
	case viewStatus:
		body = app.viewStatus()
	case viewStaff:
		body = app.viewStaff()
	case viewStaffLogin:
		body = app.viewAuth(app.login)
	case viewStaffSignup:
		body = app.viewAuth(app.signup)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, app.viewNotice())
}

// goHome tears down the active view and returns to the join form.
// Bumping the generation orphans any pending poll ticks and in-flight
// responses; they are discarded when they arrive.
func (app *App) goHome() {
	app.generation++
	app.view = viewHome
	app.home = newHomeState(app.home.queueInput.Value())
}

// openStatus mounts the status view for one ticket and starts its poll
// loop. The active queue identifier always matches the queue embedded
// in the ticket being tracked: both come from the same join result or
// the same summary row.
func (app *App) openStatus(queueID, ticketNumber string) tea.Cmd {
	app.generation++
	app.view = viewStatus
	app.status = newStatusState(queueID, ticketNumber, app.generation, app.clock)
	return tea.Batch(
		app.status.spin.Tick,
		app.fetchStatusCmd(),
		app.statusTickCmd(),
	)
}

// openStaff mounts the staff dashboard. No queue is active until the
// operator selects one.
func (app *App) openStaff() tea.Cmd {
	app.generation++
	app.view = viewStaff
	app.staff = newStaffState(app.generation)
	return app.staff.queueInput.Focus()
}

// showNotice replaces the transient notice bar and schedules its fade.
func (app *App) showNotice(text string, isError bool) tea.Cmd {
	app.notice = text
	app.noticeIsErr = isError
	app.noticeID++
	id := app.noticeID
	return tea.Tick(app.noticeFade, func(time.Time) tea.Msg {
		return noticeFadeMsg{id: id}
	})
}

// viewNotice renders the transient notice bar, or an empty line when
// no notice is visible.
func (app App) viewNotice() string {
	if app.notice == "" {
		return ""
	}
	color := app.theme.SuccessText
	if app.noticeIsErr {
		color = app.theme.ErrorText
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Padding(0, 1).
		Render(app.notice)
}

// helpLine renders a footer of key hints.
func (app App) helpLine(bindings ...key.Binding) string {
	style := lipgloss.NewStyle().Foreground(app.theme.HelpText)
	line := ""
	for index, binding := range bindings {
		if index > 0 {
			line += "  "
		}
		line += binding.Help().Key + " " + binding.Help().Desc
	}
	return style.Render(line)
}

// titleBar renders a view heading.
func (app App) titleBar(title string) string {
	return lipgloss.NewStyle().
		Foreground(app.theme.HeaderForeground).
		Bold(true).
		Padding(0, 1).
		Render(title)
}
