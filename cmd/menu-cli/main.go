package main

import (
	"context"

	"spartyspreads-backend/cmd/menu-cli/commands"
	"spartyspreads-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "menu-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
