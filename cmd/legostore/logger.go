package main

import (
	"fmt"

	"github.com/nikolayk812/legostore/internal/config"
	"go.uber.org/zap"
)

// newLogger builds a production logger writing to the configured file.
// Without a file nothing is logged, the terminal belongs to the storefront.
func newLogger(c config.LogConfig) (*zap.Logger, error) {
	if c.File == "" {
		return zap.NewNop(), nil
	}

	level, err := config.Config{Log: c}.LogLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{c.File}
	zc.ErrorOutputPaths = []string{c.File}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("zap.Build: %w", err)
	}

	return logger, nil
}
