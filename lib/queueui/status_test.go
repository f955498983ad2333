// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package queueui

import (
	"errors"
	"strings"
	"testing"

	"github.com/ST-2004/Queuescape/lib/queueapi"
)

func intPointer(value int) *int { return &value }

// mountStatus puts the app on the status view for one ticket and
// discards the mount commands; tests inject results directly.
func mountStatus(app App, queueID, ticketNumber string) App {
	app.openStatus(queueID, ticketNumber)
	return app
}

func TestStatusLoadingToReady(t *testing.T) {
	app := newTestApp(&fakeQueue{}, nil)
	app = mountStatus(app, "Registrar", "R-042")

	if app.status.phase != statusLoading {
		t.Fatalf("phase = %d, want loading", app.status.phase)
	}
	if !strings.Contains(app.View(), "fetching") {
		t.Fatalf("loading view missing spinner text:\n%s", app.View())
	}

	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        1,
		result: &queueapi.TicketStatusResult{
			Status:   queueapi.StatusWaiting,
			Position: 3,
		},
	})

	if app.status.phase != statusReady {
		t.Fatalf("phase = %d, want ready", app.status.phase)
	}
	view := app.View()
	if !strings.Contains(view, "R-042") {
		t.Errorf("view missing ticket number:\n%s", view)
	}
	if !strings.Contains(view, "Position: ") || !strings.Contains(view, "3") {
		t.Errorf("view missing position:\n%s", view)
	}
	// Afternoon traffic, position 3: 3 * 8 minutes.
	if !strings.Contains(view, "24 min") {
		t.Errorf("view missing local wait estimate:\n%s", view)
	}
}

func TestStatusPrefersServerEstimate(t *testing.T) {
	app := newTestApp(&fakeQueue{}, nil)
	app = mountStatus(app, "Registrar", "R-042")

	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        1,
		result: &queueapi.TicketStatusResult{
			Status:               queueapi.StatusWaiting,
			Position:             3,
			EstimatedWaitMinutes: intPointer(11),
		},
	})

	if !strings.Contains(app.View(), "11 min") {
		t.Fatalf("view should show the server estimate:\n%s", app.View())
	}
}

func TestStatusStaleResponseDiscarded(t *testing.T) {
	app := newTestApp(&fakeQueue{}, nil)
	app = mountStatus(app, "Registrar", "R-042")

	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        2,
		result:     &queueapi.TicketStatusResult{Status: queueapi.StatusWaiting, Position: 3},
	})
	// A slower response from an earlier fetch arrives afterwards.
	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        1,
		result:     &queueapi.TicketStatusResult{Status: queueapi.StatusWaiting, Position: 9},
	})

	if app.status.position != 3 {
		t.Fatalf("position = %d, stale response overwrote a newer one", app.status.position)
	}
}

func TestStatusErrorRecoversOnNextResult(t *testing.T) {
	app := newTestApp(&fakeQueue{}, nil)
	app = mountStatus(app, "Registrar", "R-042")

	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        1,
		err:        errors.New("connection refused"),
	})
	if app.status.phase != statusError {
		t.Fatalf("phase = %d, want error", app.status.phase)
	}
	if !strings.Contains(app.View(), "Retrying") {
		t.Fatalf("error view missing retry hint:\n%s", app.View())
	}

	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        2,
		result:     &queueapi.TicketStatusResult{Status: queueapi.StatusWaiting, Position: 1},
	})
	if app.status.phase != statusReady {
		t.Fatalf("phase = %d, want ready after successful poll", app.status.phase)
	}
}

func TestStatusNavigationOrphansPollLoop(t *testing.T) {
	app := newTestApp(&fakeQueue{}, nil)
	app = mountStatus(app, "Registrar", "R-042")
	staleGeneration := app.generation

	app, _ = update(app, escKey())
	if app.view != viewHome {
		t.Fatalf("view = %d, want home after esc", app.view)
	}

	// The orphaned tick must not reschedule.
	app, cmd := update(app, statusTickMsg{generation: staleGeneration})
	if cmd != nil {
		t.Fatal("stale tick rescheduled the poll loop")
	}
	// An orphaned in-flight response must not disturb the home view.
	app, _ = update(app, statusResultMsg{
		generation: staleGeneration,
		seq:        1,
		result:     &queueapi.TicketStatusResult{Status: queueapi.StatusWaiting, Position: 5},
	})
	if app.view != viewHome {
		t.Fatalf("view = %d, stale result changed the view", app.view)
	}
}

func TestBeingServedKeepsPolling(t *testing.T) {
	app := newTestApp(&fakeQueue{}, nil)
	app = mountStatus(app, "Registrar", "R-042")

	app, _ = update(app, statusResultMsg{
		generation: app.generation,
		seq:        1,
		result:     &queueapi.TicketStatusResult{Status: queueapi.StatusBeingServed},
	})
	if !strings.Contains(app.View(), "your turn") {
		t.Fatalf("view missing turn banner:\n%s", app.View())
	}

	// The poll loop keeps running so a re-queue or server change
	// still reaches the screen.
	_, cmd := update(app, statusTickMsg{generation: app.generation})
	if cmd == nil {
		t.Fatal("poll loop stopped while being served")
	}
}
