// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ST-2004/Queuescape/lib/clock"
	"github.com/ST-2004/Queuescape/lib/queueapi"
)

// fakeQueue is an in-memory QueueService that returns canned values
// and counts calls.
type fakeQueue struct {
	mu sync.Mutex

	joinResult *queueapi.JoinResult
	joinErr    error
	joinCalls  int

	statusResult *queueapi.TicketStatusResult
	statusErr    error
	statusCalls  int

	summary      *queueapi.Summary
	summaryErr   error
	summaryCalls int

	callNextResult *queueapi.CallNextResult
	callNextErr    error
	callNextCalls  int

	completeErr   error
	completeCalls int
	lastCompleted string

	setPeriodErr   error
	setPeriodCalls int
	lastPeriod     string
}

func (q *fakeQueue) Join(_ context.Context, queueID, email string) (*queueapi.JoinResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.joinCalls++
	return q.joinResult, q.joinErr
}

func (q *fakeQueue) Status(_ context.Context, queueID, ticketNumber string) (*queueapi.TicketStatusResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.statusCalls++
	return q.statusResult, q.statusErr
}

func (q *fakeQueue) StaffSummary(_ context.Context, queueID string) (*queueapi.Summary, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.summaryCalls++
	return q.summary, q.summaryErr
}

func (q *fakeQueue) CallNext(_ context.Context, queueID string) (*queueapi.CallNextResult, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.callNextCalls++
	return q.callNextResult, q.callNextErr
}

func (q *fakeQueue) Complete(_ context.Context, queueID, ticketNumber string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.completeCalls++
	q.lastCompleted = ticketNumber
	return q.completeErr
}

func (q *fakeQueue) SetTrafficPeriod(_ context.Context, queueID string, period string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.setPeriodCalls++
	q.lastPeriod = period
	return q.setPeriodErr
}

// fakeIdentity counts identity calls and returns canned errors.
type fakeIdentity struct {
	logInErr     error
	logInCalls   int
	signUpErr    error
	signUpCalls  int
	signOutCalls int
}

func (i *fakeIdentity) LogIn(_ context.Context, email, password string) error {
	i.logInCalls++
	return i.logInErr
}

func (i *fakeIdentity) SignUp(_ context.Context, email, password string) error {
	i.signUpCalls++
	return i.signUpErr
}

func (i *fakeIdentity) SignOut() {
	i.signOutCalls++
}

type fakeSession bool

func (s fakeSession) IsValid(context.Context) bool { return bool(s) }

// newTestApp builds an App with millisecond intervals so executed tick
// commands return promptly, and a fake clock fixed in the afternoon.
// The session starts out invalid; tests for the signed-in shortcut set
// app.session themselves.
func newTestApp(queue *fakeQueue, identity *fakeIdentity) App {
	if identity == nil {
		identity = &fakeIdentity{}
	}
	return New(Options{
		Queue:              queue,
		Identity:           identity,
		Session:            fakeSession(false),
		Clock:              clock.Fake(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)),
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		StatusPollInterval: time.Millisecond,
		StaffPollInterval:  time.Millisecond,
		NoticeFade:         time.Millisecond,
	})
}

// collectMessages executes a command tree and returns every message it
// produces, flattening batches.
func collectMessages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	message := cmd()
	if batch, ok := message.(tea.BatchMsg); ok {
		var messages []tea.Msg
		for _, child := range batch {
			messages = append(messages, collectMessages(child)...)
		}
		return messages
	}
	if message == nil {
		return nil
	}
	return []tea.Msg{message}
}

// update drives one Update step and returns the resulting App.
func update(app App, message tea.Msg) (App, tea.Cmd) {
	model, cmd := app.Update(message)
	return model.(App), cmd
}

func keyPress(letter rune) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{letter}}
}

func enterKey() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func escKey() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}
