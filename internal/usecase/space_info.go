package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// SpaceInfoTool handles the get_space_info MCP tool: it resolves the
// effective space and reports its title and structure (object type) list.
type SpaceInfoTool struct {
	api            CapacitiesAPI
	defaultSpaceID string
	logger         *slog.Logger
}

// NewSpaceInfoTool creates a SpaceInfoTool with its dependencies.
func NewSpaceInfoTool(api CapacitiesAPI, defaultSpaceID string, logger *slog.Logger) *SpaceInfoTool {
	return &SpaceInfoTool{
		api:            api,
		defaultSpaceID: defaultSpaceID,
		logger:         logger.With("tool", "get_space_info"),
	}
}

// Definition returns the MCP tool definition for registration.
func (t *SpaceInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_space_info",
		mcp.WithDescription(
			"Get the title and the list of structures (object types) of a Capacities space. "+
				"Use this to discover which entity types exist before searching.",
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Falls back to the configured default space when omitted."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle processes the get_space_info tool call. The space list and the
// structure metadata are fetched concurrently and joined fail-fast: if
// either call fails, the whole operation fails with that classified error.
// There is no partial result.
func (t *SpaceInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spaceID, err := domain.ResolveSpaceID(req.GetString("spaceId", ""), t.defaultSpaceID)
	if err != nil {
		return errorResult("get_space_info", err), nil
	}

	var (
		spaces     []domain.Space
		structures []domain.Structure
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spaces, err = t.api.ListSpaces(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		structures, err = t.api.SpaceInfo(gctx, spaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return errorResult("get_space_info", err), nil
	}

	// The space list is scoped to the token; the title is simply absent
	// when the space is not in scope.
	title := ""
	for _, s := range spaces {
		if s.ID == spaceID {
			title = s.Title
			break
		}
	}

	t.logger.Debug("Space info assembled.",
		slog.String("space_id", spaceID),
		slog.Int("structures", len(structures)))

	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "## Space: %s\n\n", title)
	} else {
		sb.WriteString("## Space\n\n")
	}
	fmt.Fprintf(&sb, "- ID: `%s`\n", spaceID)
	fmt.Fprintf(&sb, "- Structures: %d\n\n", len(structures))
	if len(structures) > 0 {
		sb.WriteString("| Structure | ID | Plural |\n|---|---|---|\n")
		for _, st := range structures {
			fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", st.Title, st.ID, st.PluralName)
		}
	}

	data := map[string]any{
		"spaceId":        spaceID,
		"structureCount": len(structures),
		"structures":     structures,
	}
	if title != "" {
		data["title"] = title
	}
	return successResult("get_space_info", sb.String(), data), nil
}
