package logger

import (
	"fmt"
	"strings"
	"sync"
)

type TestLogEntry struct {
	Severity  string
	Message   string
	Arguments []interface{}
}

// TestLogger is a Logger that records every entry for later inspection in
// tests. With and WithPrefix return the receiver, so entries logged through
// derived loggers stay visible on the original. Recording is safe for
// concurrent use; read Logs only after the goroutines using the logger are
// done, or go through Entries/Contains.
type TestLogger struct {
	mu   sync.Mutex
	Logs []TestLogEntry
}

var _ Logger = (*TestLogger)(nil)

func NewTestLogger() *TestLogger {
	return &TestLogger{}
}

func (c *TestLogger) With(metadata map[string]interface{}) Logger {
	return c
}

func (c *TestLogger) WithPrefix(prefix string) Logger {
	return c
}

func (c *TestLogger) IsLevelEnabled(level LogLevel) bool {
	return true
}

func (c *TestLogger) record(severity string, msg string, args []interface{}) {
	c.mu.Lock()
	c.Logs = append(c.Logs, TestLogEntry{severity, msg, args})
	c.mu.Unlock()
}

func (c *TestLogger) Trace(msg string, args ...interface{}) {
	c.record("TRACE", msg, args)
}

func (c *TestLogger) Debug(msg string, args ...interface{}) {
	c.record("DEBUG", msg, args)
}

func (c *TestLogger) Info(msg string, args ...interface{}) {
	c.record("INFO", msg, args)
}

func (c *TestLogger) Warn(msg string, args ...interface{}) {
	c.record("WARNING", msg, args)
}

func (c *TestLogger) Error(msg string, args ...interface{}) {
	c.record("ERROR", msg, args)
}

// Entries returns a snapshot of everything recorded so far.
func (c *TestLogger) Entries() []TestLogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]TestLogEntry{}, c.Logs...)
}

// Contains reports whether any recorded entry's formatted message contains s.
func (c *TestLogger) Contains(s string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.Logs {
		if strings.Contains(fmt.Sprintf(entry.Message, entry.Arguments...), s) {
			return true
		}
	}
	return false
}
