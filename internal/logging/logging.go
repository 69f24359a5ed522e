package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup builds a logger at the given level. JSON output is used for
// long-running services, text output for interactive commands.
func Setup(level string, json bool, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	if json {
		formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		}
	}

	if out == nil {
		out = os.Stderr
	}

	return &logrus.Logger{
		Formatter: formatter,
		Out:       out,
		Hooks:     make(logrus.LevelHooks),
		Level:     lvl,
	}, nil
}

// SetupFile logs to the file at path, or discards output when path is
// empty. Used by the terminal UI, which owns the screen.
func SetupFile(level, path string) (*logrus.Logger, io.Closer, error) {
	if path == "" {
		logger, err := Setup(level, false, io.Discard)
		return logger, nopCloser{}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := Setup(level, false, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger, _ := Setup("panic", false, io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
