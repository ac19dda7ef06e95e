// ecom-agent TUI - A terminal interface for the e-commerce analytics agent.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/config"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/session"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		sessionFlag = flag.String("session", "", "session key to open (overrides config)")
		apiURLFlag  = flag.String("api-url", "", "analytics service base URL (overrides config)")
		configFlag  = flag.String("config", "", "path to config file")
		debugFlag   = flag.String("debug-log", "", "write debug log to file")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	// The TUI owns stdout, so debug logging goes to a file.
	if *debugFlag != "" {
		f, err := tea.LogToFile(*debugFlag, "ecom-agent")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	if *versionFlag {
		fmt.Printf("ecom-agent %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// Load configuration. A broken config file is fatal; a missing one
	// falls back to defaults inside Load.
	var cfg *config.Config
	var err error
	if *configFlag != "" {
		cfg, err = config.LoadFromPath(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config and environment.
	if *apiURLFlag != "" {
		cfg.API.BaseURL = *apiURLFlag
	}
	if *sessionFlag != "" {
		cfg.Session.DefaultKey = *sessionFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Gateway client.
	client := agent.NewClientWithConfig(&agent.ClientConfig{
		BaseURL:          cfg.API.BaseURL,
		QueryTimeout:     time.Duration(cfg.API.QueryTimeoutSecs) * time.Second,
		RequestTimeout:   time.Duration(cfg.API.RequestTimeoutSecs) * time.Second,
		QueriesPerMinute: cfg.API.QueriesPerMinute,
	})

	// Local session registry. The TUI works without it, so failures
	// degrade to a warning.
	var registry *session.Registry
	if path, rerr := cfg.RegistryPath(); rerr == nil {
		registry, rerr = session.OpenRegistry(path)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: session registry unavailable: %v\n", rerr)
		}
	}
	if registry != nil {
		defer registry.Close()
	}

	controller := session.NewController(client)
	m := chat.New(controller, client, registry, cfg, Version)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Watch the config file and push reloads into the running program.
	// Only the on-disk config participates; -config paths are watched too.
	watchPath := *configFlag
	if watchPath == "" {
		if tomlPath, perr := config.ConfigPathTOML(); perr == nil {
			watchPath = tomlPath
		}
	}
	if watchPath != "" {
		if watcher, werr := config.NewWatcher(watchPath); werr == nil {
			defer watcher.Close()
			go func() {
				for reloaded := range watcher.Changes {
					p.Send(chat.ConfigReloadedMsg{Config: reloaded})
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
