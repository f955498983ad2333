// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"errors"
	"strings"
	"testing"

	"github.com/ST-2004/Queuescape/lib/queueapi"
)

func TestJoinRejectsInvalidEmailLocally(t *testing.T) {
	queue := &fakeQueue{}
	app := newTestApp(queue, nil)

	app.home.queueInput.SetValue("Registrar")
	app.home.emailInput.SetValue("not-an-email")
	app, _ = update(app, enterKey())

	if queue.joinCalls != 0 {
		t.Fatalf("joinCalls = %d, validation should be local", queue.joinCalls)
	}
	if app.home.fieldError == "" {
		t.Fatal("invalid email produced no inline error")
	}
	if !strings.Contains(app.View(), app.home.fieldError) {
		t.Fatalf("inline error not rendered:\n%s", app.View())
	}
}

func TestJoinRequiresQueueName(t *testing.T) {
	queue := &fakeQueue{}
	app := newTestApp(queue, nil)

	app.home.emailInput.SetValue("a@b.co")
	app, _ = update(app, enterKey())

	if queue.joinCalls != 0 {
		t.Fatalf("joinCalls = %d, want 0", queue.joinCalls)
	}
	if app.home.fieldError == "" {
		t.Fatal("missing queue name produced no inline error")
	}
}

func TestJoinFailureStaysOnForm(t *testing.T) {
	queue := &fakeQueue{joinErr: errors.New("service unavailable")}
	app := newTestApp(queue, nil)

	app.home.queueInput.SetValue("Registrar")
	app.home.emailInput.SetValue("a@b.edu")
	app, cmd := update(app, enterKey())
	for _, message := range collectMessages(cmd) {
		if _, ok := message.(joinResultMsg); ok {
			app, _ = update(app, message)
		}
	}

	if app.view != viewHome {
		t.Fatalf("view = %d, want home after failed join", app.view)
	}
	if !app.noticeIsErr || app.notice == "" {
		t.Fatal("failed join produced no error notice")
	}
	if app.home.submitting {
		t.Fatal("form still marked submitting after failure")
	}
}

// TestJoinFlowEndToEnd walks the visitor path: fill the form, join,
// land on the status view, and render the first poll result with the
// afternoon wait estimate.
func TestJoinFlowEndToEnd(t *testing.T) {
	queue := &fakeQueue{
		joinResult: &queueapi.JoinResult{TicketNumber: "R-042"},
		statusResult: &queueapi.TicketStatusResult{
			Status:   queueapi.StatusWaiting,
			Position: 3,
		},
	}
	app := newTestApp(queue, nil)

	app.home.queueInput.SetValue("Registrar")
	app.home.emailInput.SetValue("a@b.edu")
	app, cmd := update(app, enterKey())

	var joined bool
	for _, message := range collectMessages(cmd) {
		if _, ok := message.(joinResultMsg); ok {
			joined = true
			app, cmd = update(app, message)
		}
	}
	if !joined {
		t.Fatal("submit produced no join result")
	}
	if app.view != viewStatus {
		t.Fatalf("view = %d, want status after join", app.view)
	}
	if app.status.ticketNumber != "R-042" || app.status.queueID != "Registrar" {
		t.Fatalf("status mounted for %s/%s, want Registrar/R-042",
			app.status.queueID, app.status.ticketNumber)
	}

	// The mount commands include the first fetch; apply its result.
	for _, message := range collectMessages(cmd) {
		if _, ok := message.(statusResultMsg); ok {
			app, _ = update(app, message)
		}
	}
	if queue.statusCalls == 0 {
		t.Fatal("mounting the status view issued no fetch")
	}

	view := app.View()
	if !strings.Contains(view, "R-042") {
		t.Errorf("view missing ticket number:\n%s", view)
	}
	if !strings.Contains(view, "WAITING") {
		t.Errorf("view missing status:\n%s", view)
	}
	if !strings.Contains(view, "24 min") {
		t.Errorf("view missing afternoon wait estimate (3 * 8 min):\n%s", view)
	}
}

func TestJoinSurfacesServerMessage(t *testing.T) {
	queue := &fakeQueue{
		joinResult: &queueapi.JoinResult{
			TicketNumber: "R-042",
			Message:      "You are already in this queue",
		},
	}
	app := newTestApp(queue, nil)

	app.home.queueInput.SetValue("Registrar")
	app.home.emailInput.SetValue("a@b.edu")
	app, cmd := update(app, enterKey())
	for _, message := range collectMessages(cmd) {
		if _, ok := message.(joinResultMsg); ok {
			app, _ = update(app, message)
		}
	}

	if app.notice != "You are already in this queue" {
		t.Fatalf("notice = %q, want the server message verbatim", app.notice)
	}
	if app.view != viewStatus {
		t.Fatalf("view = %d, duplicate join should still open the status view", app.view)
	}
}
