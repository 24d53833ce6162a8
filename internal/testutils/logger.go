// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import (
	"fmt"
	"sync"
	"testing"
)

// Logger writes to a testing.TB and remembers every message, so tests can
// assert on what was logged. It is safe for concurrent use.
type Logger struct {
	T testing.TB

	mu       sync.Mutex
	messages []string
}

func (l *Logger) log(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
	l.T.Log(msg)
}

// Infof implements the Logger.Infof interface.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(format, args...)
}

// Errorf implements the Logger.Errorf interface.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(format, args...)
}

// Fatalf implements the Logger.Fatalf interface.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}

// Messages returns the messages logged so far, in order.
func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}
