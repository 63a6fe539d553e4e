package logger

import "go.uber.org/zap"

var global *zap.Logger

// Init builds the process-wide logger. Call once from main before Load/Connect.
func Init(isDev bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if isDev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	global = l
	return nil
}

func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}

// L returns the process logger, or a nop logger when Init was never called.
func L() *zap.Logger {
	if global == nil {
		return zap.NewNop()
	}
	return global
}
