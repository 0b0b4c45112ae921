// Package tscmd implements the tscat CLI.
package tscmd

import (
	"context"

	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
)

// Main is the main function for the tscat CLI.
func Main() {
	logger := func() *zap.Logger {
		log, _ := zap.NewProduction()
		return log
	}()
	ctx := context.Background()
	ctx = logctx.NewContext(ctx, logger)
	star.Main(rootCmd, star.MainBackground(ctx))
}

// Root returns the root command for the tscat CLI.
func Root() star.Command {
	return rootCmd
}

var rootCmd = star.NewDir(
	star.Metadata{
		Short: "tscat reads legacy-encoded text as UTF-8",
	}, map[string]star.Command{
		"cat":   catCmd,
		"lines": linesCmd,
	})
