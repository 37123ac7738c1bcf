package stacker

import(
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewLogger builds the logger the CLIs use. Verbosity 0 logs progress,
// 1 adds debug detail, 2 and up switches to JSON lines.
func NewLogger(verbosity int) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch {
	case verbosity > 1:
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case verbosity == 1:
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// runLogger tags everything a Stack logs with a short run id, so runs
// can be told apart in shared logs.
func runLogger(l *logrus.Logger) logrus.FieldLogger {
	return l.WithField("run", uuid.NewString()[:8])
}
