// Package logger builds the logrus logger shared by the game and the spawner.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Formatter prints one line per entry: time, level, component, message and
// the remaining fields sorted by key.
type Formatter struct {
	TimestampFormat string
	DisableColors   bool
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var levelColor *color.Color
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		levelColor = color.New(color.FgRed, color.Bold)
	case logrus.WarnLevel:
		levelColor = color.New(color.FgYellow, color.Bold)
	case logrus.InfoLevel:
		levelColor = color.New(color.FgCyan)
	default:
		levelColor = color.New(color.FgWhite, color.Faint)
	}
	levelText := strings.ToUpper(entry.Level.String())

	prefix := ""
	if comp, ok := entry.Data["component"]; ok {
		prefix = fmt.Sprintf("[%v] ", comp)
		if !f.DisableColors {
			prefix = fmt.Sprintf("[%s] ", color.New(color.FgBlue).Sprint(comp))
		}
	}

	var b strings.Builder
	b.WriteString(entry.Time.Format(f.TimestampFormat))
	b.WriteString(" ")
	if f.DisableColors {
		b.WriteString(levelText)
	} else {
		b.WriteString(levelColor.Sprint(levelText))
	}
	b.WriteString(": ")
	b.WriteString(prefix)
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, entry.Data[k]))
		}
		fields := " {" + strings.Join(parts, ", ") + "}"
		if f.DisableColors {
			b.WriteString(fields)
		} else {
			b.WriteString(color.New(color.FgWhite, color.Faint).Sprint(fields))
		}
	}
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// New creates a logger at the given level writing to stderr, and also to
// logFile when one is given. Unknown levels fall back to info.
func New(logLevel, logFile string) (*logrus.Logger, io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logger: open %s: %w", logFile, err)
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}
	return NewWithOutput(logLevel, out, false), closer, nil
}

// NewWithOutput creates a logger writing to output.
func NewWithOutput(logLevel string, output io.Writer, disableColors bool) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&Formatter{
		TimestampFormat: "15:04:05",
		DisableColors:   disableColors,
	})
	log.SetOutput(output)
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
