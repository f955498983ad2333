// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package queueui is the terminal UI for the QueueEscape client.
//
// The App model owns a tagged union of view states — Home (join form),
// Status (one ticket's live view), Staff (operator dashboard), and the
// StaffLogin/StaffSignup forms — with a single Update/View dispatcher
// switching on the active tag.
//
// The two live views poll: the status view re-fetches one ticket on a
// fixed interval, the staff view re-fetches the active queue's summary.
// Polling is driven by tea.Tick messages that carry the view generation
// current when they were scheduled; navigating away bumps the
// generation, so pending ticks and late responses from a torn-down view
// are discarded rather than applied. Each outgoing fetch additionally
// carries a sequence number and responses older than the last applied
// one are dropped, so a slow response can never overwrite a newer one
// regardless of arrival order.
package queueui
