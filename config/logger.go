package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the command-line logger. An unknown log_level falls back to
// info and is reported once the logger exists.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	if c.LogLevel == "" {
		log.SetLevel(logrus.InfoLevel)
		return log
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.WithError(err).Warn("config: unknown log_level, using info")
		return log
	}
	log.SetLevel(lvl)
	return log
}
