package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

func (l Level) String() string { return levelNames[l] }

// ParseLevel maps a config string ("debug", "info", ...) to a Level.
// Unknown values fall back to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger provides structured JSON logging with optional secret redaction.
type Logger struct {
	entry  *logrus.Logger
	redact bool
}

// New creates a logger writing JSON lines to w.
func New(w io.Writer, level Level, redact bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		FieldMap:        logrus.FieldMap{logrus.FieldKeyTime: "time", logrus.FieldKeyMsg: "msg"},
	})
	l.SetLevel(toLogrus(level))
	return &Logger{entry: l, redact: redact}
}

var defaultLogger = New(os.Stderr, INFO, true)

// SetDefault replaces the package-level logger.
func SetDefault(l *Logger) { defaultLogger = l }

// SetLevel sets the minimum log level for the default logger.
func SetLevel(l Level) { defaultLogger.entry.SetLevel(toLogrus(l)) }

// SetRedact enables or disables secret redaction for the default logger.
func SetRedact(r bool) { defaultLogger.redact = r }

// Debug emits a DEBUG-level structured log entry.
func Debug(msg string, fields ...interface{}) { defaultLogger.Log(DEBUG, msg, fields...) }

// Info emits an INFO-level structured log entry.
func Info(msg string, fields ...interface{}) { defaultLogger.Log(INFO, msg, fields...) }

// Warn emits a WARN-level structured log entry.
func Warn(msg string, fields ...interface{}) { defaultLogger.Log(WARN, msg, fields...) }

// Error emits an ERROR-level structured log entry.
func Error(msg string, fields ...interface{}) { defaultLogger.Log(ERROR, msg, fields...) }

// Log writes msg with the given key/value pairs. A trailing key without a
// value is dropped.
func (l *Logger) Log(level Level, msg string, fields ...interface{}) {
	lf := make(logrus.Fields, len(fields)/2)
	for i := 0; i < len(fields)-1; i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		val := fmt.Sprintf("%v", fields[i+1])
		if l.redact {
			val = redactValue(key, val)
		}
		lf[key] = val
	}

	e := l.entry.WithFields(lf)
	switch level {
	case DEBUG:
		e.Debug(msg)
	case WARN:
		e.Warn(msg)
	case ERROR:
		e.Error(msg)
	default:
		e.Info(msg)
	}
}

func toLogrus(l Level) logrus.Level {
	switch l {
	case DEBUG:
		return logrus.DebugLevel
	case WARN:
		return logrus.WarnLevel
	case ERROR:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
