// Package logger provides component loggers with a colored "[PREFIX] [LEVEL]"
// line format on top of logrus.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	general_i "github.com/beka-birhanu/vinom-mazeviz/interfaces/general"
	"github.com/sirupsen/logrus"
)

const (
	errorColor = "\033[31m"
	infoColor  = "\033[32m"
	warnColor  = "\033[33m"
	resetColor = "\033[0m"
)

var (
	ErrEmptyPrefix = errors.New("logger: prefix is empty")
	ErrNilWriter   = errors.New("logger: output writer is nil")
)

var _ general_i.Logger = &Logger{}

// Logger writes leveled lines tagged with a component prefix.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the component named prefix. color is an ANSI
// sequence applied to the prefix; an empty color disables all coloring,
// which is what file outputs want.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if out == nil {
		return nil, ErrNilWriter
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})

	return &Logger{entry: logrus.NewEntry(l)}, nil
}

// WithField returns a logger that appends key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// Info implements general_i.Logger.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Warning implements general_i.Logger.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

// Error implements general_i.Logger.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

type prefixFormatter struct {
	prefix string
	color  string
}

// Format renders "2006-01-02T15:04:05Z07:00 [PREFIX] [LEVEL] msg k=v".
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(e.Time.Format(time.RFC3339))
	buf.WriteByte(' ')
	f.paint(&buf, f.color, "["+f.prefix+"]")
	buf.WriteByte(' ')

	switch e.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		f.paint(&buf, errorColor, "[ERROR]")
	case logrus.WarnLevel:
		f.paint(&buf, warnColor, "[WARN]")
	default:
		f.paint(&buf, infoColor, "[INFO]")
	}

	buf.WriteByte(' ')
	buf.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(fmt.Sprint(e.Data[k]))
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (f *prefixFormatter) paint(buf *bytes.Buffer, color, s string) {
	if f.color == "" {
		buf.WriteString(s)
		return
	}
	buf.WriteString(color)
	buf.WriteString(s)
	buf.WriteString(resetColor)
}
