package logsvc

import (
	"go.uber.org/zap"

	"github.com/trezcool/shule/core"
)

type ZapLogger struct {
	sl *zap.SugaredLogger
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(debug bool) (*ZapLogger, error) {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sl: logger.Sugar()}, nil
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	l.sl.Debugw(msg, spread(args)...)
}

func (l *ZapLogger) Info(msg string, args ...interface{}) {
	l.sl.Infow(msg, spread(args)...)
}

func (l *ZapLogger) Warn(msg string, args ...interface{}) {
	l.sl.Warnw(msg, spread(args)...)
}

func (l *ZapLogger) Error(msg string, args ...interface{}) {
	l.sl.Errorw(msg, spread(args)...)
}

func (l *ZapLogger) Fatal(msg string, args ...interface{}) {
	l.sl.Fatalw(msg, spread(args)...)
}

func (l *ZapLogger) Sync() error { return l.sl.Sync() }

// expected args fmt: error, map[string]interface{}, ...
func spread(args []interface{}) []interface{} {
	kvs := make([]interface{}, 0, 2*len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			kvs = append(kvs, "error", a)
		case map[string]interface{}:
			for k, v := range a {
				kvs = append(kvs, k, v)
			}
		default:
			kvs = append(kvs, "arg", a)
		}
	}
	return kvs
}
