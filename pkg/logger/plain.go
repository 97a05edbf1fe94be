package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// PlainFormatter renders entries as "<ISO8601> - <message>" lines, the
// format of the updater log file. Structured fields are folded into the
// message line in key order; the module field is dropped.
type PlainFormatter struct{}

// Format implements logrus.Formatter.
func (f *PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s - %s", entry.Time.Format(time.RFC3339), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == "module" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitPlain initializes the global logger for the updater process: plain
// timestamped lines appended to logPath and mirrored to stdout. When the
// file cannot be opened the updater keeps running with stdout only.
func InitPlain(logPath string) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&PlainFormatter{})

	outputs := []io.Writer{os.Stdout}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Printf("Warning: Could not create log directory for %s: %v\n", logPath, err)
	} else if probe, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		fmt.Printf("Warning: Could not write to log file %s: %v\n", logPath, err)
	} else {
		probe.Close()
		outputs = append(outputs, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    5,
			MaxBackups: 1,
		})
	}

	if len(outputs) > 1 {
		logger.SetOutput(io.MultiWriter(outputs...))
	} else {
		logger.SetOutput(outputs[0])
	}

	globalLogger = &Logger{Logger: logger}
}
