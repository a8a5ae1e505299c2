// Package logging configures the structured logger shared by all commands.
package logging

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing text records to out. Every record carries a
// fresh run id so interleaved output from parallel invocations can be split
// apart.
func New(out io.Writer, debug, quiet bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})
	switch {
	case debug:
		l.SetLevel(logrus.DebugLevel)
	case quiet:
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l.WithField("run", uuid.NewString())
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
