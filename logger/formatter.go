package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultFieldSeparator  = " | "
	defaultTimestampFormat = time.RFC3339
)

// Formatter implements logrus.Formatter with ordered engine fields and
// optional ANSI colors for console output.
type Formatter struct {
	// TimestampFormat specifies the format of the timestamp. Default: time.RFC3339.
	TimestampFormat string
	// NoColors disables colorized level output (file logs).
	NoColors bool
	// DisableTimestamp drops the timestamp entirely.
	DisableTimestamp bool
	// FieldsOrder lists field keys to display first, in this order. Remaining
	// fields are appended alphabetically.
	FieldsOrder []string
	// FieldSeparator separates the bracketed fields. Default: " | ".
	FieldSeparator string
	// HideKeys shows only field values ("[bottle]" instead of "[Zone:bottle]").
	HideKeys bool
}

// Format renders a single log entry.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		tsFormat := f.TimestampFormat
		if tsFormat == "" {
			tsFormat = defaultTimestampFormat
		}
		b.WriteString(entry.Time.Format(tsFormat))
		b.WriteByte(' ')
	}

	f.writeLevel(&b, entry.Level)

	if fields := f.orderedFields(entry); len(fields) > 0 {
		sep := f.FieldSeparator
		if sep == "" {
			sep = defaultFieldSeparator
		}
		b.WriteByte('[')
		b.WriteString(strings.Join(fields, sep))
		b.WriteString("] ")
	}

	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *Formatter) writeLevel(b *bytes.Buffer, level logrus.Level) {
	name := strings.ToUpper(level.String())
	if name == "WARNING" {
		name = "WARN"
	}
	if f.NoColors {
		fmt.Fprintf(b, "[%s] ", name)
		return
	}
	fmt.Fprintf(b, "\x1b[%dm[%s]\x1b[0m ", levelColor(level), name)
}

func levelColor(level logrus.Level) int {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return 37 // gray
	case logrus.InfoLevel:
		return 36 // cyan
	case logrus.WarnLevel:
		return 33 // yellow
	default:
		return 31 // red for error and above
	}
}

// orderedFields renders entry fields as "key:value" strings, FieldsOrder
// first, the rest alphabetically.
func (f *Formatter) orderedFields(entry *logrus.Entry) []string {
	if len(entry.Data) == 0 {
		return nil
	}

	rendered := make([]string, 0, len(entry.Data))
	seen := make(map[string]bool, len(entry.Data))

	for _, key := range f.FieldsOrder {
		if val, ok := entry.Data[key]; ok {
			rendered = append(rendered, f.renderField(key, val))
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		rendered = append(rendered, f.renderField(key, entry.Data[key]))
	}
	return rendered
}

func (f *Formatter) renderField(key string, val interface{}) string {
	if f.HideKeys {
		return fmt.Sprintf("%v", val)
	}
	return fmt.Sprintf("%s:%v", key, val)
}
