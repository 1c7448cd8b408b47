package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger on stderr at LogLevel. Unknown levels fall
// back to info.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
