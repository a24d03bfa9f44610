package style

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/calperm/calperm/internal/logging"
)

// DefaultLogRetries is the number of write attempts per log line.
const DefaultLogRetries = 2

// DefaultLogExtension is appended to bare log names without an extension.
const DefaultLogExtension = ".log"

// ResolveLogPath maps a log file argument to a path. A bare name (no path
// separator) is placed in dir and gets ".log" when it has no extension; a
// name containing a separator is used literally.
func ResolveLogPath(dir, name string) string {
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	if filepath.Ext(name) == "" {
		name += DefaultLogExtension
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// FormatLogLine builds the plain-text log line: optional "[timestamp]" and
// "[LEVEL]" prefixes followed by the text.
func FormatLogLine(text, timestamp, level string) string {
	var b strings.Builder
	if timestamp != "" {
		b.WriteString("[" + timestamp + "] ")
	}
	if level != "" {
		b.WriteString("[" + strings.ToUpper(level) + "] ")
	}
	b.WriteString(text)
	return b.String()
}

// appendLog writes one line with bounded retries. Exhaustion is a warning,
// never an error.
func (r *Renderer) appendLog(opts LogOptions, text string) {
	if opts.File == "" {
		return
	}
	path := ResolveLogPath(r.LogDir, opts.File)

	timestamp := ""
	if opts.Time {
		timestamp = r.now().Format(TimeFormat)
	}
	line := FormatLogLine(text, timestamp, opts.Level)

	attempts := opts.Retries
	if attempts <= 0 {
		attempts = DefaultLogRetries
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = appendLine(path, line); err == nil {
			return
		}
		logging.Debug("log append failed",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	r.warn(fmt.Sprintf("could not write to log file %s after %d attempts: %v", path, attempts, err))
}

func appendLine(path, line string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
