package usecase

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// availableCapabilities lists the tools that are actually backed by the
// Capacities API. Unsupported responses echo this list so an agent can
// discover alternatives without trial and error.
var availableCapabilities = []string{
	"get_space_info",
	"search_entities",
	"save_weblink",
	"save_to_daily_note",
}

// successResult renders a fulfilled tool call: markdown text for reading,
// plus a structured payload tagged with the tool name.
func successResult(tool, markdown string, data map[string]any) *mcp.CallToolResult {
	payload := map[string]any{"tool": tool}
	for k, v := range data {
		payload[k] = v
	}
	res := mcp.NewToolResultText(markdown)
	res.StructuredContent = payload
	return res
}

// unsupportedResult renders the explicit-unsupported outcome: a
// deterministic, non-error declaration that the Capacities API has no
// equivalent capability. The validated request is echoed back and extra
// carries tool-specific fields (e.g. which filters would have been honored).
func unsupportedResult(tool, reason string, request map[string]any, extra map[string]any) *mcp.CallToolResult {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s: not supported\n\n%s\n\n", tool, reason)
	sb.WriteString("Capabilities backed by the Capacities API:\n")
	for _, c := range availableCapabilities {
		fmt.Fprintf(&sb, "- %s\n", c)
	}

	payload := map[string]any{
		"tool":                  tool,
		"supported":             false,
		"reason":                reason,
		"availableCapabilities": availableCapabilities,
	}
	if len(request) > 0 {
		payload["request"] = request
	}
	for k, v := range extra {
		payload[k] = v
	}

	res := mcp.NewToolResultText(sb.String())
	res.StructuredContent = payload
	return res
}

// errorResult classifies err and renders it as a tool error: a short code,
// the message, and a concrete next action. Raw unclassified failures never
// reach the host.
func errorResult(tool string, err error) *mcp.CallToolResult {
	toolErr := domain.Classify(err)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s failed\n\n", tool)
	fmt.Fprintf(&sb, "**%s**: %s\n\n", toolErr.Kind, toolErr.Message)
	fmt.Fprintf(&sb, "Next step: %s\n", toolErr.Action)

	errPayload := map[string]any{
		"code":    string(toolErr.Kind),
		"message": toolErr.Message,
		"action":  toolErr.Action,
	}
	if toolErr.Status != 0 {
		errPayload["status"] = toolErr.Status
	}

	res := mcp.NewToolResultError(sb.String())
	res.StructuredContent = map[string]any{"tool": tool, "error": errPayload}
	return res
}
