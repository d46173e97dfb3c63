package cmd

import "go.uber.org/zap"

func newLogger(ctx *Context, production bool) *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	if production {
		logConfig = zap.NewProductionConfig()
	}

	if ctx != nil && ctx.Debug {
		logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, _ := logConfig.Build()

	return logger
}
