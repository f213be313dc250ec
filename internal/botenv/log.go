package botenv

import (
	"io"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
)

// NewLogger creates a logging object which can be passed around (safely). It
// writes JSON lines to a size-rotated file, or to w when cfg.Path is empty.
func NewLogger(cfg LogConfig, w io.Writer) (*logrus.Logger, error) {
	level := logrus.DebugLevel
	if cfg.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(cfg.Level); err != nil {
			return nil, err
		}
	}

	out := w
	if cfg.Path != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
	}

	return &logrus.Logger{
		Out:       out,
		Formatter: new(logrus.JSONFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}, nil
}
