package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formatter renders log lines as "[YYYY-MM-DD HH:MM:SS] [tag] message".
// Warnings and errors additionally carry a level marker so they stand
// out when scanning the log file.
type Formatter struct{}

// Format renders a single log entry.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString("[")
	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	b.WriteString("]")

	if tag, ok := entry.Data[TagField]; ok {
		fmt.Fprintf(&b, " [%v]", tag)
	}

	if entry.Level <= logrus.WarnLevel {
		level := strings.ToUpper(entry.Level.String())
		if entry.Level == logrus.WarnLevel {
			level = "WARN"
		}
		fmt.Fprintf(&b, " %s:", level)
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)
	b.WriteString("\n")
	return []byte(b.String()), nil
}
