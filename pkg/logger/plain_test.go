package logger

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainFormatter(t *testing.T) {
	f := &PlainFormatter{}
	entry := &logrus.Entry{
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Message: "Updater started",
		Data: logrus.Fields{
			"state":  "STARTED",
			"module": "replace",
			"new":    "/tmp/gdtpack.new",
		},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:26:53Z - Updater started new=/tmp/gdtpack.new state=STARTED\n", string(out))
}

func TestPlainFormatterNoFields(t *testing.T) {
	f := &PlainFormatter{}
	entry := &logrus.Entry{
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Message: "Updater is exiting",
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:26:53Z - Updater is exiting\n", string(out))
}
