package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func BoostrapLogger() {
	Log = &logrus.Logger{
		Out:          nil,
		Hooks:        nil,
		Formatter:    pickFormatter(),
		ReportCaller: false,
		Level:        pickLevel(),
		ExitFunc:     nil,
	}

	Log.SetReportCaller(true)
	Log.Out = os.Stdout
}

// Local runs get the readable text format, everything else emits
// JSON lines for CloudWatch.
func pickFormatter() logrus.Formatter {
	if os.Getenv("APP_ENV") == "local" {
		return &logrus.TextFormatter{
			DisableColors:    false,
			DisableQuote:     false,
			DisableTimestamp: false,
			FullTimestamp:    false,
			TimestampFormat:  "",
		}
	}
	return &logrus.JSONFormatter{}
}

func pickLevel() logrus.Level {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		return logrus.DebugLevel
	}

	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}
