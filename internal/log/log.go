package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"traveline/local-app/internal/model"
)

// Fields carries structured key/value pairs attached to a log record
type Fields map[string]interface{}

// LogMessage represents a message queued for the logging goroutine
type LogMessage struct {
	Level   LogLevel
	Content string
	Fields  Fields
	Context context.Context
}

// Logger writes commands, errors and everything else to separate JSON sinks
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	files         []*os.File
	logChan       chan LogMessage
	done          chan struct{}
	wg            sync.WaitGroup
	closeOnce     sync.Once
	level         LogLevel
}

// NewLogger creates a Logger writing into the log folder named by the config
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(cfg.LogFolder, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		files = append(files, f)
		return f, nil
	}

	commandFile, err := open(cfg.CommandLog)
	if err != nil {
		return nil, err
	}
	errorFile, err := open(cfg.ErrorLog)
	if err != nil {
		return nil, err
	}
	infoFile, err := open(cfg.InfoLog)
	if err != nil {
		return nil, err
	}

	l := newLogger(commandFile, errorFile, infoFile, level)
	l.files = files
	return l, nil
}

// NewWriter creates a Logger that sends every record to w
func NewWriter(w io.Writer, level LogLevel) *Logger {
	return newLogger(w, w, w, level)
}

// NewNop creates a Logger that discards everything
func NewNop() *Logger {
	return newLogger(io.Discard, io.Discard, io.Discard, LevelCommand)
}

func newLogger(commandOut, errorOut, infoOut io.Writer, level LogLevel) *Logger {
	l := &Logger{
		commandLogger: slog.New(slog.NewJSONHandler(commandOut, &slog.HandlerOptions{Level: slog.LevelInfo})),
		errorLogger:   slog.New(slog.NewJSONHandler(errorOut, &slog.HandlerOptions{Level: slog.LevelError})),
		infoLogger:    slog.New(slog.NewJSONHandler(infoOut, &slog.HandlerOptions{Level: slog.LevelDebug})),
		logChan:       make(chan LogMessage, 100),
		done:          make(chan struct{}),
		level:         level,
	}

	l.wg.Add(1)
	go l.processLogs()

	return l
}

// processLogs handles incoming log messages until Close is called
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			l.write(msg)
		case <-l.done:
			// Drain whatever is still queued.
			for {
				select {
				case msg := <-l.logChan:
					l.write(msg)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) write(msg LogMessage) {
	ctx := msg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	attrs := msg.Fields.attrs()

	switch msg.Level {
	case LevelCommand:
		l.commandLogger.LogAttrs(ctx, slog.LevelInfo, msg.Content, attrs...)
	case LevelError:
		l.errorLogger.LogAttrs(ctx, slog.LevelError, msg.Content, attrs...)
	default:
		l.infoLogger.LogAttrs(ctx, msg.Level.toSlogLevel(), msg.Content, attrs...)
	}
}

func (f Fields) attrs() []slog.Attr {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		v := f[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

func (l *Logger) enqueue(ctx context.Context, level LogLevel, msg string, fields Fields) {
	if l == nil || level > l.level {
		return
	}
	select {
	case l.logChan <- LogMessage{Level: level, Content: msg, Fields: fields, Context: ctx}:
	case <-l.done:
	}
}

// Command logs a user command
func (l *Logger) Command(ctx context.Context, command string, fields Fields) {
	l.enqueue(ctx, LevelCommand, command, fields)
}

// Error logs an error
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelError, msg, fields)
}

// Warn logs a warning
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelWarn, msg, fields)
}

// Info logs an informational message
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelInfo, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.enqueue(ctx, LevelDebug, msg, fields)
}

// Level returns the most verbose level that is written
func (l *Logger) Level() LogLevel {
	return l.level
}

// Close stops the logging goroutine, flushing queued records, and closes all log files
func (l *Logger) Close() error {
	var firstErr error
	l.closeOnce.Do(func() {
		close(l.done)
		l.wg.Wait()

		for _, f := range l.files {
			if err := f.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("failed to close log file %s: %w", filepath.Base(f.Name()), err)
			}
		}
	})
	return firstErr
}
