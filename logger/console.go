package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const isWindows = runtime.GOOS == "windows"

var noColor = os.Getenv("TERM") == "dumb" ||
	(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()))

func color(val string) string {
	if isWindows || noColor {
		return ""
	}
	return val
}

const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[1;90m"
)

type consoleLogger struct {
	mu       *sync.Mutex
	out      io.Writer
	prefixes []string
	metadata map[string]interface{}
	logLevel LogLevel
}

var _ Logger = (*consoleLogger)(nil)

// NewConsoleLogger returns a Logger that writes colorized, human-readable
// lines to stderr at the given level. With no level argument the level comes
// from the POKECACHE_LOG_LEVEL environment variable.
func NewConsoleLogger(levels ...LogLevel) Logger {
	level := GetLevelFromEnv()
	if len(levels) > 0 {
		level = levels[0]
	}
	return &consoleLogger{
		mu:       &sync.Mutex{},
		out:      os.Stderr,
		logLevel: level,
	}
}

func (c *consoleLogger) clone() *consoleLogger {
	return &consoleLogger{
		mu:       c.mu,
		out:      c.out,
		prefixes: c.prefixes,
		metadata: c.metadata,
		logLevel: c.logLevel,
	}
}

func (c *consoleLogger) With(metadata map[string]interface{}) Logger {
	clone := c.clone()
	kv := make(map[string]interface{}, len(c.metadata)+len(metadata))
	for k, v := range c.metadata {
		kv[k] = v
	}
	for k, v := range metadata {
		kv[k] = v
	}
	clone.metadata = kv
	return clone
}

func (c *consoleLogger) WithPrefix(prefix string) Logger {
	clone := c.clone()
	clone.prefixes = append(append([]string{}, c.prefixes...), prefix)
	return clone
}

func (c *consoleLogger) IsLevelEnabled(level LogLevel) bool {
	return level >= c.logLevel
}

func (c *consoleLogger) log(level LogLevel, levelColor string, label string, msg string, args []interface{}) {
	if !c.IsLevelEnabled(level) {
		return
	}
	line := fmt.Sprintf(msg, args...)
	if len(c.prefixes) > 0 {
		line = strings.Join(c.prefixes, " ") + " " + line
	}
	var suffix string
	if len(c.metadata) > 0 {
		// json.Marshal emits map keys sorted, so output is stable.
		if buf, err := json.Marshal(c.metadata); err == nil {
			suffix = " " + color(Gray) + string(buf) + color(Reset)
		}
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s%s%s %s[%s]%s %s%s\n",
		color(Gray), ts, color(Reset),
		color(levelColor), label, color(Reset),
		line, suffix)
}

func (c *consoleLogger) Trace(msg string, args ...interface{}) {
	c.log(LevelTrace, Gray, "TRACE", msg, args)
}

func (c *consoleLogger) Debug(msg string, args ...interface{}) {
	c.log(LevelDebug, Cyan, "DEBUG", msg, args)
}

func (c *consoleLogger) Info(msg string, args ...interface{}) {
	c.log(LevelInfo, Green, "INFO ", msg, args)
}

func (c *consoleLogger) Warn(msg string, args ...interface{}) {
	c.log(LevelWarn, Yellow, "WARN ", msg, args)
}

func (c *consoleLogger) Error(msg string, args ...interface{}) {
	c.log(LevelError, Red, "ERROR", msg, args)
}
