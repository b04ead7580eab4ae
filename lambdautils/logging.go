package lambdautils

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger writing to stderr with the given level
// name and format ("json" or "text").
func NewLogger(level string, format string) (*logrus.Logger, error) {
	return newLogger(os.Stderr, level, format)
}

func newLogger(w io.Writer, level string, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, errors.Errorf("invalid log format '%s'", format)
	}

	return logger, nil
}

// Logger returns an entry of base carrying the lambda metadata of ctx.
func Logger(ctx context.Context, base *logrus.Logger) *logrus.Entry {
	return base.WithContext(ctx).WithFields(GetLambdaMetaData(ctx).Fields())
}
