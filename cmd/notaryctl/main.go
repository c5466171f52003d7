// Command notaryctl exports and inspects the notary records from a shell.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"notary-ally/internal/app"
	"notary-ally/internal/config"
)

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads configuration and opens the configured store. Logs go to
// stderr so command output stays clean.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(cfg.NewLoggerTo(os.Stderr))
	return app.New(ctx, cfg)
}
