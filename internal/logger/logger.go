package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/config"
)

const maxLogSize = 10 * 1024 * 1024

// Logger wraps the logrus logger together with its backing file.
type Logger struct {
	*logrus.Logger
	file *os.File
	path string
}

// New opens (or rotates) debug.log under the configured directory in the
// user's home and returns a logger writing to it. The terminal belongs to the
// UI, so nothing is written to stdout.
func New(cfg config.LogConfig) (*Logger, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewInDir(filepath.Join(homeDir, cfg.Dir), cfg.Level)
}

// NewInDir is New with an explicit log directory.
func NewInDir(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, "debug.log")
	f, err := openRotated(dir, path)
	if err != nil {
		return nil, err
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})

	out := &Logger{Logger: l, file: f, path: path}
	out.WithField("path", path).Info("Logger initialized")
	return out, nil
}

// openRotated opens path for appending, moving it aside first when it grew
// past maxLogSize.
func openRotated(dir, path string) (*os.File, error) {
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backupPath := filepath.Join(dir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(path, backupPath)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// Close closes the log file
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

// Path returns the current log file path
func (l *Logger) Path() string {
	return l.path
}

// LogPanic logs a recovered panic with stack trace
func (l *Logger) LogPanic(r any) {
	l.WithField("stack", string(debug.Stack())).Errorf("panic: %v", r)
}
