// Package app carries the settings shared by folio subcommands.
package app

import (
	"context"

	"go.uber.org/zap"

	"portfolio/src/internal/content"
	"portfolio/src/internal/logx"
)

// Options is filled from config and root persistent flags before any
// subcommand runs.
type Options struct {
	Data     string
	Format   string
	LogLevel string
	Log      *zap.Logger
}

// Logger returns the configured logger, or a no-op one.
func (o *Options) Logger() *zap.Logger {
	if o == nil || o.Log == nil {
		return logx.Nop()
	}
	return o.Log
}

// Load reads the data document named by Data.
func (o *Options) Load(ctx context.Context) (*content.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := o.Logger()
	log.Debug("loading data", zap.String("source", o.Data))
	doc, err := content.Load(ctx, o.Data)
	if err != nil {
		return nil, err
	}
	log.Info("loaded data", zap.String("source", o.Data), zap.Int("publications", len(doc.Publications)))
	return doc, nil
}
