package usecase

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// EntityByIDTool handles the get_entity_by_id MCP tool. The Capacities API
// has no entity-by-id endpoint, so after validating its input the tool
// always declares the capability unsupported.
type EntityByIDTool struct {
	logger *slog.Logger
}

// NewEntityByIDTool creates an EntityByIDTool.
func NewEntityByIDTool(logger *slog.Logger) *EntityByIDTool {
	return &EntityByIDTool{logger: logger.With("tool", "get_entity_by_id")}
}

// Definition returns the MCP tool definition for registration.
func (t *EntityByIDTool) Definition() mcp.Tool {
	return mcp.NewTool("get_entity_by_id",
		mcp.WithDescription(
			"Fetch a single entity by its id and structure id. The Capacities API does not "+
				"expose this capability; the tool reports that deterministically. Use "+
				"search_entities to locate entities instead.",
		),
		mcp.WithString("entityId",
			mcp.Required(),
			mcp.Description("Identifier of the entity to fetch."),
		),
		mcp.WithString("structureId",
			mcp.Required(),
			mcp.Description("Structure (object type) id the entity belongs to."),
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Echoed back; no remote call is made."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

// Handle validates presence of the identifiers and echoes the normalized
// request back in the unsupported response.
func (t *EntityByIDTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entityID := trimmedArg(req, "entityId")
	structureID := trimmedArg(req, "structureId")

	if entityID == "" {
		return errorResult("get_entity_by_id", domain.NewValidationError(
			"entityId is required",
			"Pass the id of the entity to fetch.",
		)), nil
	}
	if structureID == "" {
		return errorResult("get_entity_by_id", domain.NewValidationError(
			"structureId is required",
			"Pass the structure id the entity belongs to.",
		)), nil
	}

	request := map[string]any{
		"entityId":    entityID,
		"structureId": structureID,
	}
	if spaceID := trimmedArg(req, "spaceId"); spaceID != "" {
		request["spaceId"] = spaceID
	}

	return unsupportedResult("get_entity_by_id",
		"the Capacities API has no entity-by-id endpoint; use search_entities to locate entities by keyword",
		request, nil,
	), nil
}
