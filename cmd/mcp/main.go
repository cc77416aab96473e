// Command mcp serves the plan tools over MCP stdio. Logs go to stderr.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/yungbote/liftplan-backend/internal/app"
	"github.com/yungbote/liftplan-backend/internal/mcp"
	"github.com/yungbote/liftplan-backend/internal/platform/shutdown"
)

func main() {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()
	a.Start(ctx)

	s := mcp.New(a.Generator, app.Version, a.Log)
	if err := server.ServeStdio(s); err != nil {
		a.Log.Error("mcp server exited", "error", err)
	}
}
