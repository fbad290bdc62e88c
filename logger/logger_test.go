package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level LogLevel) (*consoleLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &consoleLogger{mu: &sync.Mutex{}, out: &buf, logLevel: level}, &buf
}

func TestConsoleLevelFiltering(t *testing.T) {
	log, buf := newBufferLogger(LevelWarn)
	log.Debug("should be dropped")
	log.Info("should be dropped too")
	log.Warn("kept: %d", 42)
	log.Error("also kept")
	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept: 42")
	assert.Contains(t, out, "also kept")
}

func TestConsolePrefixAndMetadata(t *testing.T) {
	log, buf := newBufferLogger(LevelDebug)
	child := log.WithPrefix("[cache]").With(map[string]interface{}{"key": "25"})
	child.Debug("hit")
	out := buf.String()
	assert.Contains(t, out, "[cache] hit")
	assert.Contains(t, out, `"key":"25"`)
	// The parent logger is unchanged.
	buf.Reset()
	log.Debug("plain")
	assert.False(t, strings.Contains(buf.String(), "[cache]"))
}

func TestTestLoggerRecords(t *testing.T) {
	log := NewTestLogger()
	log.Warn("empty key on %s", "get")
	log.Info("cleared %d entries", 3)
	assert.Len(t, log.Logs, 2)
	assert.Equal(t, "WARNING", log.Logs[0].Severity)
	assert.True(t, log.Contains("empty key on get"))
	assert.True(t, log.Contains("cleared 3 entries"))
	assert.False(t, log.Contains("no such message"))
}

func TestTestLoggerDerivedLoggersShareRecordings(t *testing.T) {
	log := NewTestLogger()
	derived := log.WithPrefix("[cache]").With(map[string]interface{}{"key": "25"})
	derived.Warn("attempted to get cache entry with empty key")
	assert.True(t, log.Contains("empty key"))
	assert.Len(t, log.Entries(), 1)
}

func TestTestLoggerConcurrentRecording(t *testing.T) {
	log := NewTestLogger()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				log.Debug("worker %d iteration %d", g, i)
				_ = log.Contains("worker 0")
			}
		}(g)
	}
	wg.Wait()
	assert.Len(t, log.Entries(), 400)
}

func TestGetLevelFromEnv(t *testing.T) {
	t.Setenv("POKECACHE_LOG_LEVEL", "trace")
	assert.Equal(t, LevelTrace, GetLevelFromEnv())
	t.Setenv("POKECACHE_LOG_LEVEL", "ERROR")
	assert.Equal(t, LevelError, GetLevelFromEnv())
	t.Setenv("POKECACHE_LOG_LEVEL", "bogus")
	assert.Equal(t, LevelInfo, GetLevelFromEnv())
}
