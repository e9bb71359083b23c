package app

import (
	"context"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"go.uber.org/multierr"
)

// Run assembles the application, serves the health and metrics endpoints,
// and blocks until ctx is done. The assembled modules are closed before Run
// returns, also when assembly fails.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if err := a.Assemble(ctx); err != nil {
		return multierr.Append(err, a.Close())
	}
	a.startHealthCheckServer()

	logger.Info("Application is running.")
	<-ctx.Done()
	logger.Info("Shutdown requested.")

	return a.Close()
}
