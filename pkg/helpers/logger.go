package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger. Development gets colored text at
// debug level, everything else JSON at info. A parseable level overrides either.
func NewLogger(appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		} else {
			logger.WithField("level", level).Warn("unknown log level, keeping default")
		}
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env, "level": logger.GetLevel().String()}).Info("logger initialized")
	return logger
}

func withErr(fields logrus.Fields, err error) logrus.Fields {
	if fields == nil {
		fields = logrus.Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}

// LogError and LogWarn are no-ops on a nil logger so optional collaborators can call them freely.
func LogError(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	logger.WithFields(withErr(fields, err)).Error(msg)
}

func LogWarn(logger *logrus.Logger, msg string, err error, fields logrus.Fields) {
	if logger == nil {
		return
	}
	logger.WithFields(withErr(fields, err)).Warn(msg)
}
