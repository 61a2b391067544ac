package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"chargewatch-backend/lib/telemetry"
	"chargewatch-backend/lib/util/serviceutil"

	"github.com/lmittmann/tint"
)

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func initTelemetry(ctx context.Context) func() {
	t, err := telemetry.SetupFromEnv(ctx, "chargewatch")
	if os.IsNotExist(err) {
		slog.Warn("no telemetry.json5 found, traces and metrics are disabled")
		return func() {}
	}
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)

	return func() {
		err := t.Shutdown(context.Background())
		if err != nil {
			slog.Error("failed to shutdown telemetry", "err", err)
		}
	}
}
