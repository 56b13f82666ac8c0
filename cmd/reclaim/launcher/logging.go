package launcher

import (
	"fmt"
	"io"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

var verbosityLevels = []logrus.Level{
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// makeLogger builds the process logger. Errors and worse go to Sentry when a
// DSN is configured.
func makeLogger(cfg Config, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.Out = out
	logger.SetLevel(verbosityLevel(cfg.Logging.Verbosity))

	switch cfg.Logging.Format {
	case "json":
		logger.Formatter = &logrus.JSONFormatter{}
	default:
		logger.Formatter = &logrus.TextFormatter{
			ForceColors:   cfg.Logging.Color,
			DisableColors: !cfg.Logging.Color,
			FullTimestamp: true,
		}
	}

	if cfg.Sentry.DSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.Sentry.DSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry hook: %w", err)
		}
		hook.StacktraceConfiguration.Enable = true
		logger.AddHook(hook)
	}
	return logger, nil
}

func verbosityLevel(v int) logrus.Level {
	switch {
	case v < 0:
		return verbosityLevels[0]
	case v >= len(verbosityLevels):
		return verbosityLevels[len(verbosityLevels)-1]
	default:
		return verbosityLevels[v]
	}
}
