// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// queueescape is the terminal client for the QueueEscape virtual queue
// service.
//
// Visitors join a queue by name and email and then watch a live view
// of their ticket: status, position, and an estimated wait derived
// from the queue's traffic period. Staff sign in to a dashboard that
// shows the full queue, calls the next visitor, completes the ticket
// being served, and adjusts the traffic period.
//
// Configuration comes from a single YAML file named by the
// QUEUEESCAPE_CONFIG environment variable or the --config flag; there
// is no fallback discovery.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/ST-2004/Queuescape/lib/clock"
	"github.com/ST-2004/Queuescape/lib/config"
	"github.com/ST-2004/Queuescape/lib/identity"
	"github.com/ST-2004/Queuescape/lib/queueapi"
	"github.com/ST-2004/Queuescape/lib/queueui"
	"github.com/ST-2004/Queuescape/lib/session"
	"github.com/ST-2004/Queuescape/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var defaultQueue string
	var logOutput string

	flagSet := pflag.NewFlagSet("queueescape", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&defaultQueue, "queue", "", "queue name to pre-fill in the join form (overrides the config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to keep it usable without
	// a config file.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("queueescape")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	path, err := config.Locate(configPath)
	if err != nil {
		return err
	}
	configuration, err := config.Load(path)
	if err != nil {
		return err
	}
	if defaultQueue == "" {
		defaultQueue = configuration.DefaultQueue
	}

	logger, cleanup, err := buildLogger(logOutput)
	if err != nil {
		return err
	}
	defer cleanup()

	clk := clock.Real()

	identityClient, err := identity.NewClient(identity.ClientConfig{
		BaseURL: configuration.IdentityURL,
		Logger:  logger,
		Clock:   clk,
	})
	if err != nil {
		return err
	}
	gate := session.NewGate(identityClient, clk)

	queueClient, err := queueapi.NewClient(queueapi.ClientConfig{
		BaseURL: configuration.QueueAPIURL,
		Gate:    gate,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	app := queueui.New(queueui.Options{
		Queue:              queueClient,
		Identity:           identityClient,
		Session:            gate,
		Clock:              clk,
		Logger:             logger,
		DefaultQueue:       defaultQueue,
		StatusPollInterval: configuration.StatusInterval(),
		StaffPollInterval:  configuration.StaffInterval(),
		NoticeFade:         configuration.NoticeFadeDelay(),
	})

	program := tea.NewProgram(app, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// buildLogger returns a logger that writes JSON records to the given
// file, or discards records when no file is named. Logging to stderr
// would corrupt the TUI.
func buildLogger(logOutput string) (*slog.Logger, func(), error) {
	if logOutput == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output %s: %w", logOutput, err)
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `QueueEscape — terminal client for the virtual queue service.

Visitors join a queue with an email address and watch their ticket's
position and estimated wait. Staff sign in (ctrl+s from the join form)
to manage a queue: call the next visitor, complete the ticket being
served, and set the traffic period that drives wait estimates.

Usage:
  queueescape [flags]

Flags:
%s
The config file is YAML:

  queue_api_url: https://api.example.com
  identity_url: https://id.example.com
  default_queue: Registrar      # optional
  status_poll_interval: 5s      # optional
  staff_poll_interval: 10s      # optional
  notice_fade: 5s               # optional
`, flagSet.FlagUsages())
}
