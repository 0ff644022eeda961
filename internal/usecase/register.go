package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// mcpTool is the shape every tool in this package exposes for registration.
type mcpTool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// RegisterTools wires every tool handler into the MCP server. Each handler
// is wrapped to count invocations and log durations; the wrapper never
// touches the result.
func RegisterTools(s *server.MCPServer, api CapacitiesAPI, defaultSpaceID string, logger *slog.Logger) {
	meter := otel.Meter("capacities-mcp/usecase")
	invocations, err := meter.Int64Counter("mcp.tool.invocations",
		metric.WithDescription("Number of MCP tool invocations, by tool name."))
	if err != nil {
		logger.Warn("Failed to create invocation counter; continuing without it.", slog.Any("error", err))
	}

	tools := []mcpTool{
		NewSpaceInfoTool(api, defaultSpaceID, logger),
		NewSearchTool(api, defaultSpaceID, logger),
		NewEntityByIDTool(logger),
		NewListTasksTool(logger),
		NewCreateTaskTool(logger),
		NewUpdateTaskTool(logger),
		NewCompleteTaskTool(logger),
		NewSaveWeblinkTool(api, defaultSpaceID, logger),
		NewSaveToDailyNoteTool(api, defaultSpaceID, logger),
	}

	for _, t := range tools {
		def := t.Definition()
		s.AddTool(def, instrumented(def.Name, t.Handle, invocations, logger))
	}
	logger.Info("Tools registered.", slog.Int("count", len(tools)))
}

// instrumented wraps a tool handler with an invocation counter and a
// duration debug log.
func instrumented(name string, h server.ToolHandlerFunc, invocations metric.Int64Counter, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := h(ctx, req)
		if invocations != nil {
			invocations.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", name)))
		}
		logger.Debug("Tool call handled.",
			slog.String("tool", name),
			slog.Duration("elapsed", time.Since(start)))
		return res, err
	}
}
