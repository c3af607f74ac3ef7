package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger sends info logs to stdout and warnings and errors to stderr.
func InitLogger() {
	InitLoggerTo(os.Stdout, os.Stderr)
}

// InitLoggerTo is InitLogger with explicit writers.
func InitLoggerTo(info, errs io.Writer) {
	InfoLogger.SetOutput(info)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	InfoLogger.SetLevel(logrus.InfoLevel)

	ErrorLogger.SetOutput(errs)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	ErrorLogger.SetLevel(logrus.WarnLevel)
}
