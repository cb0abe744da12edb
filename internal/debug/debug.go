package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	logger  = newLogger(os.Stderr)
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&formatter{})
	return l
}

// formatter renders "[LEVEL] hh:mm:ss.mmm message key=value ..." lines.
type formatter struct{}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	mu.RLock()
	useColor := !noColor
	mu.RUnlock()

	var b bytes.Buffer
	level := strings.ToUpper(e.Level.String())
	timestamp := e.Time.Format("15:04:05.000")

	if useColor {
		fmt.Fprintf(&b, "%s[%s]%s %s%s%s %s", colorCyan, level, colorReset, colorGray, timestamp, colorReset, e.Message)
	} else {
		fmt.Fprintf(&b, "[%s] %s %s", level, timestamp, e.Message)
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	enabled = enable
	mu.Unlock()

	if enable {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// WithFields returns a structured entry for step-level logging.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	logger.Debugf(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	logger.Debugf("=== %s ===", section)
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	logger.Debugf("%s = %v", key, value)
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	logger.Debugf("%s:\n%s", key, string(jsonBytes))
}
