package logger

import (
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
)

type Options struct {
	// Level is a logrus level name; empty means info.
	Level  string
	// Format is "json" or "text"; empty means text.
	Format string
	Output io.Writer
}

// OptionsFromEnv reads LOG_LEVEL and LOG_FORMAT.
func OptionsFromEnv() Options {
	return Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		Output: os.Stdout,
	}
}

// runIDHook stamps every entry with the id of the current job.
type runIDHook struct {
	runID string
}

func (h *runIDHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *runIDHook) Fire(entry *logrus.Entry) error {
	entry.Data["run_id"] = h.runID
	return nil
}

// Setup configures the standard logrus logger and returns the run_id that is
// attached to every entry from now on.
func Setup(opts Options) (string, error) {
	if opts.Output != nil {
		logrus.SetOutput(opts.Output)
	}

	if strings.EqualFold(opts.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level := logrus.InfoLevel
	if opts.Level != "" {
		lvl, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return "", err
		}

		level = lvl
	}

	logrus.SetLevel(level)

	// Instrument logrus.
	logrus.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
	)))

	runID := uuid.NewString()
	logrus.AddHook(&runIDHook{runID: runID})

	return runID, nil
}
