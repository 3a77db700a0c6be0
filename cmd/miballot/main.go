package main

import (
	"context"

	"miballot-backend/cmd/miballot/commands"
	"miballot-backend/lib/serviceutil"
	"miballot-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	t, err := telemetry.SetupFromEnv(ctx, "miballot")
	if err == nil {
		defer t.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	commands.ExecuteContext(ctx)
}
