package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/brainmap.log"

// defaultTailSize is how many recent entries Lines keeps for the on-screen overlay.
const defaultTailSize = 64

// Options configure New.
type Options struct {
	Path     string    // log file; "" uses LogFilePath, "-" disables the file
	Verbose  bool      // debug level instead of info
	Console  io.Writer // human-readable sink; nil uses os.Stderr
	TailSize int       // entries kept in memory; 0 uses the default
}

// Logger is a zap logger that also writes JSON lines to a file and keeps the most
// recent entries in memory for drawing on screen.
type Logger struct {
	*zap.Logger
	tail *tail
	file *os.File
}

// New builds the logger and ensures the log directory exists.
func New(opts Options) (*Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	size := opts.TailSize
	if size <= 0 {
		size = defaultTailSize
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	consoleEnc := zapcore.NewConsoleEncoder(encCfg)

	l := &Logger{tail: &tail{max: size}}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.AddSync(console), level),
		zapcore.NewCore(consoleEnc.Clone(), zapcore.AddSync(l.tail), level),
	}

	path := opts.Path
	if path == "" {
		path = LogFilePath
	}
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		l.file = f
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...))
	return l, nil
}

// Nop returns a logger that discards everything. Lines always returns nil.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), tail: &tail{max: 0}}
}

// Lines returns a copy of the most recent entries, oldest first.
func (l *Logger) Lines() []string {
	return l.tail.lines()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// tail is an in-memory ring of encoded entries. zap writes one entry per Write call.
type tail struct {
	mu  sync.Mutex
	max int
	buf []string
}

func (t *tail) Write(p []byte) (int, error) {
	if t.max <= 0 {
		return len(p), nil
	}
	line := strings.TrimRight(string(p), "\n")
	t.mu.Lock()
	t.buf = append(t.buf, line)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	t.mu.Unlock()
	return len(p), nil
}

func (t *tail) lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) == 0 {
		return nil
	}
	out := make([]string, len(t.buf))
	copy(out, t.buf)
	return out
}
