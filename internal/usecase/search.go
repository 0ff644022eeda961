package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// Search result-count bounds. The Capacities search API has no paging, so
// the limit is applied locally after filtering.
const (
	searchDefaultLimit = 20
	searchMinLimit     = 1
	searchMaxLimit     = 100
)

// SearchTool handles the search_entities MCP tool: keyword lookup with
// best-effort type filtering on top of the Capacities search API.
type SearchTool struct {
	api            CapacitiesAPI
	defaultSpaceID string
	logger         *slog.Logger
	now            func() time.Time
}

// NewSearchTool creates a SearchTool with its dependencies.
func NewSearchTool(api CapacitiesAPI, defaultSpaceID string, logger *slog.Logger) *SearchTool {
	return &SearchTool{
		api:            api,
		defaultSpaceID: defaultSpaceID,
		logger:         logger.With("tool", "search_entities"),
		now:            time.Now,
	}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_entities",
		mcp.WithDescription(
			"Search entities in a Capacities space by keyword. Supports a best-effort type "+
				"filter matched against the space's structures. Date filters are accepted for "+
				"compatibility but the Capacities search API cannot apply them. Text is required; "+
				"without it the tool reports which filter dimensions would be honored.",
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Falls back to the configured default space when omitted."),
		),
		mcp.WithString("text",
			mcp.Description("Search text. The only filter the Capacities API applies server-side."),
		),
		mcp.WithString("type",
			mcp.Description("Structure filter, matched case-insensitively against structure id, title, or plural name."),
		),
		mcp.WithString("date",
			mcp.Description("Single date filter: YYYY-MM-DD or \"yesterday\". Mutually exclusive with dateFrom/dateTo."),
		),
		mcp.WithString("dateFrom",
			mcp.Description("Range start: YYYY-MM-DD or \"yesterday\". Requires dateTo."),
		),
		mcp.WithString("dateTo",
			mcp.Description("Range end: YYYY-MM-DD or \"yesterday\". Requires dateFrom."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results, 1-100. Defaults to 20."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle processes the search_entities tool call. All input validation runs
// before any remote call; a call without text is declared unsupported
// without touching the network.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := trimmedArg(req, "text")
	typeFilter := trimmedArg(req, "type")

	limit := intArg(req, "limit", searchDefaultLimit)
	if limit < searchMinLimit || limit > searchMaxLimit {
		return errorResult("search_entities", domain.NewValidationError(
			fmt.Sprintf("limit %d is out of range", limit),
			fmt.Sprintf("Use a limit between %d and %d.", searchMinLimit, searchMaxLimit),
		)), nil
	}

	dates, err := normalizeDateFilters(
		req.GetString("date", ""),
		req.GetString("dateFrom", ""),
		req.GetString("dateTo", ""),
		t.now(),
	)
	if err != nil {
		return errorResult("search_entities", err), nil
	}

	if text == "" {
		// The Capacities API only searches by text. Without it there is
		// nothing to send; declare the call unsupported and name exactly
		// which filter dimensions a text search would honor.
		request := map[string]any{"limit": limit}
		if typeFilter != "" {
			request["type"] = typeFilter
		}
		dates.addTo(request)
		return unsupportedResult("search_entities",
			"search without text is not supported: the Capacities search API matches on text only",
			request,
			map[string]any{
				"honoredFilters":   []string{"text", "spaceId", "type", "limit"},
				"unhonoredFilters": []string{"date", "dateFrom", "dateTo"},
			},
		), nil
	}

	spaceID, err := domain.ResolveSpaceID(req.GetString("spaceId", ""), t.defaultSpaceID)
	if err != nil {
		return errorResult("search_entities", err), nil
	}

	results, err := t.api.Search(ctx, text, spaceID)
	if err != nil {
		return errorResult("search_entities", err), nil
	}

	var notes []string
	if typeFilter != "" {
		results, notes, err = t.applyTypeFilter(ctx, spaceID, typeFilter, results, notes)
		if err != nil {
			return errorResult("search_entities", err), nil
		}
	}
	if !dates.empty() {
		notes = append(notes, "date filters are recorded but not applied: the Capacities search API matches on text only")
	}

	totalCount := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	t.logger.Debug("Search completed.",
		slog.String("space_id", spaceID),
		slog.Int("total", totalCount),
		slog.Int("returned", len(results)))

	query := map[string]any{"text": text, "limit": limit}
	if typeFilter != "" {
		query["type"] = typeFilter
	}
	dates.addTo(query)

	return successResult("search_entities",
		renderSearchMarkdown(text, results, totalCount, notes),
		map[string]any{
			"spaceId":       spaceID,
			"query":         query,
			"totalCount":    totalCount,
			"returnedCount": len(results),
			"results":       results,
			"notes":         notes,
		},
	), nil
}

// applyTypeFilter narrows results by the requested type. Structure ids,
// titles, and plural names are matched case-insensitively; when nothing in
// the space matches the type string, results are instead kept on direct
// case-insensitive equality between their structure id and the raw type
// string, so an unresolvable type still narrows rather than silently
// matching everything. This fallback is deliberate and load-bearing.
func (t *SearchTool) applyTypeFilter(ctx context.Context, spaceID, typeFilter string, results []domain.SearchResult, notes []string) ([]domain.SearchResult, []string, error) {
	structures, err := t.api.SpaceInfo(ctx, spaceID)
	if err != nil {
		return nil, notes, err
	}

	allowed := make(map[string]struct{})
	for _, st := range structures {
		if strings.EqualFold(st.ID, typeFilter) ||
			strings.EqualFold(st.Title, typeFilter) ||
			(st.PluralName != "" && strings.EqualFold(st.PluralName, typeFilter)) {
			allowed[st.ID] = struct{}{}
		}
	}

	filtered := results[:0:0]
	if len(allowed) > 0 {
		for _, r := range results {
			if _, ok := allowed[r.StructureID]; ok {
				filtered = append(filtered, r)
			}
		}
	} else {
		for _, r := range results {
			if strings.EqualFold(r.StructureID, typeFilter) {
				filtered = append(filtered, r)
			}
		}
		notes = append(notes, fmt.Sprintf(
			"no structure in the space matched type %q; results were filtered by raw structure id equality instead",
			typeFilter))
	}

	return filtered, notes, nil
}

func renderSearchMarkdown(text string, results []domain.SearchResult, totalCount int, notes []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search results for %q\n\n", text)

	if totalCount == 0 {
		sb.WriteString("_No results found._\n")
	} else {
		fmt.Fprintf(&sb, "%d match(es), showing %d.\n\n", totalCount, len(results))
		for i, r := range results {
			fmt.Fprintf(&sb, "%d. **%s** (structure: `%s`, id: `%s`)\n", i+1, r.Title, r.StructureID, r.ID)
		}
	}

	if len(notes) > 0 {
		sb.WriteString("\nNotes:\n")
		for _, n := range notes {
			fmt.Fprintf(&sb, "- %s\n", n)
		}
	}
	return sb.String()
}
