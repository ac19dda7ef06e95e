// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// analytics agent client.
package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reports edits to a config file so the UI can pick up changes
// without a restart.
type Watcher struct {
	fs   *fsnotify.Watcher
	path string

	// Changes receives a freshly loaded config after each successful
	// reload. Edits that fail to parse or validate are skipped; the last
	// good config stays in effect.
	Changes chan *Config

	done chan struct{}
}

// NewWatcher watches the config file at path.
//
// The parent directory is watched rather than the file itself: editors
// typically replace config files via rename, which would otherwise drop the
// watch after the first save.
func NewWatcher(path string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, err
	}

	w := &Watcher{
		fs:      fs,
		path:    path,
		Changes: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadFromPath(w.path)
			if err != nil {
				continue
			}
			// Drop a stale pending config so the latest always wins.
			select {
			case <-w.Changes:
			default:
			}
			w.Changes <- cfg
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
