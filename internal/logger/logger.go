package logger

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger. format is "text" or "json";
// an unknown level falls back to warn.
func Init(level, format string) {
	Configure(log.StandardLogger(), os.Stderr, level, format)
}

func Configure(l *log.Logger, out io.Writer, level, format string) {
	l.SetOutput(out)
	if strings.EqualFold(format, "json") {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	l.SetLevel(lvl)
}

// For returns an entry tagged with the component name.
func For(component string) *log.Entry {
	return log.WithField("component", component)
}
