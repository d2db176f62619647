package lib

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel defines the severity of log messages
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

const (
	arrowGlyph = "➢"
	debugGlyph = "🔎"
)

// Logger writes CLI feedback to the terminal and, optionally, to a rotating log file.
// Info and debug records go to out, warnings and errors to errOut.
type Logger struct {
	level  LogLevel
	out    io.Writer
	errOut io.Writer
	file   *log.Logger
	closer io.Closer

	arrow lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

// NewLogger creates a logger writing to stdout and stderr
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithWriters(level, os.Stdout, os.Stderr)
}

// NewLoggerWithWriters creates a logger with explicit destinations.
// Colors are enabled only when the destination is a color-capable terminal.
func NewLoggerWithWriters(level LogLevel, out, errOut io.Writer) *Logger {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &Logger{
		level:  level,
		out:    out,
		errOut: errOut,
		arrow:  outRenderer.NewStyle().Foreground(lipgloss.Color("6")),
		warn:   errRenderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		err:    errRenderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// DefaultLogger is an INFO level logger on stdout and stderr, used when no logger is supplied
var DefaultLogger = NewLogger(LogLevelInfo)

// WithFile mirrors every record (debug included) into a size-rotated log file
func (l *Logger) WithFile(path string, maxSizeMB int) *Logger {
	if path == "" {
		return l
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}
	l.file = log.New(rotating, "", log.LstdFlags)
	l.closer = rotating
	return l
}

// Close flushes and closes the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...interface{}) {
	l.log(LogLevelDebug, message, fields...)
}

// Info logs an informational message
func (l *Logger) Info(message string, fields ...interface{}) {
	l.log(LogLevelInfo, message, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...interface{}) {
	l.log(LogLevelWarn, message, fields...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...interface{}) {
	l.log(LogLevelError, message, fields...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LogLevelDebug, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LogLevelInfo, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LogLevelWarn, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LogLevelError, fmt.Sprintf(format, args...))
}

// Detail prints a raw detail line (usually a server message) under the previous record
func (l *Logger) Detail(details string) {
	if details == "" {
		return
	}
	if l.file != nil {
		l.file.Printf("[DETAIL] %s", sanitize(details))
	}
	fmt.Fprintln(l.errOut, details)
}

// log formats and writes a log message with optional fields
func (l *Logger) log(level LogLevel, message string, fields ...interface{}) {
	line := message + formatFields(fields)

	if l.file != nil {
		l.file.Printf("[%s] %s", levelName(level), sanitize(line))
	}

	if level < l.level {
		return
	}

	switch level {
	case LogLevelDebug:
		fmt.Fprintf(l.out, "%s %s\n", l.arrow.Render(debugGlyph), line)
	case LogLevelInfo:
		fmt.Fprintf(l.out, "%s %s\n", l.arrow.Render(arrowGlyph), line)
	case LogLevelWarn:
		fmt.Fprintf(l.errOut, "%s: %s\n", l.warn.Render("warning"), line)
	default:
		fmt.Fprintf(l.errOut, "%s: %s\n", l.err.Render("error"), line)
	}
}

func formatFields(fields []interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(" |")
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			sb.WriteString(fmt.Sprintf(" %v=%v", fields[i], fields[i+1]))
		} else {
			sb.WriteString(fmt.Sprintf(" %v", fields[i]))
		}
	}
	return sb.String()
}

// sanitize removes line breaks to prevent log spoofing in the log file
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}

func levelName(level LogLevel) string {
	switch level {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// LogServiceCall logs HTTP service calls
func LogServiceCall(logger *Logger, method string, url string, requestID string) {
	logger.Debug(
		"API call",
		"method", method,
		"url", url,
		"request_id", requestID,
	)
}

// LogServiceResponse logs HTTP service responses
func LogServiceResponse(logger *Logger, url string, statusCode int, duration time.Duration) {
	logger.Debug(
		"API response",
		"url", url,
		"status", statusCode,
		"duration", duration.Round(time.Millisecond),
	)
}
