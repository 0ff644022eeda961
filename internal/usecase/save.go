package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// SaveWeblinkTool handles the save_weblink MCP tool, backed by the
// POST /save-weblink endpoint.
type SaveWeblinkTool struct {
	api            CapacitiesAPI
	defaultSpaceID string
	logger         *slog.Logger
}

// NewSaveWeblinkTool creates a SaveWeblinkTool with its dependencies.
func NewSaveWeblinkTool(api CapacitiesAPI, defaultSpaceID string, logger *slog.Logger) *SaveWeblinkTool {
	return &SaveWeblinkTool{
		api:            api,
		defaultSpaceID: defaultSpaceID,
		logger:         logger.With("tool", "save_weblink"),
	}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveWeblinkTool) Definition() mcp.Tool {
	return mcp.NewTool("save_weblink",
		mcp.WithDescription(
			"Save a web link into a Capacities space, optionally overriding title and "+
				"description and attaching markdown notes and tags.",
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http(s) URL to save."),
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Falls back to the configured default space when omitted."),
		),
		mcp.WithString("titleOverwrite",
			mcp.Description("Replaces the title Capacities derives from the page."),
		),
		mcp.WithString("descriptionOverwrite",
			mcp.Description("Replaces the description Capacities derives from the page."),
		),
		mcp.WithString("mdText",
			mcp.Description("Markdown notes stored with the link."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tag names to attach."),
		),
	)
}

// Handle validates the URL, resolves the space, and saves the link.
func (t *SaveWeblinkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL := trimmedArg(req, "url")
	if rawURL == "" {
		return errorResult("save_weblink", domain.NewValidationError(
			"url is required",
			"Pass the absolute http(s) URL to save.",
		)), nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errorResult("save_weblink", domain.NewValidationError(
			fmt.Sprintf("url %q is not an absolute http(s) URL", rawURL),
			"Use a full URL including the scheme, e.g. https://example.com/article.",
		)), nil
	}

	spaceID, err := domain.ResolveSpaceID(req.GetString("spaceId", ""), t.defaultSpaceID)
	if err != nil {
		return errorResult("save_weblink", err), nil
	}

	saveReq := domain.SaveWeblinkRequest{
		SpaceID:              spaceID,
		URL:                  rawURL,
		TitleOverwrite:       trimmedArg(req, "titleOverwrite"),
		DescriptionOverwrite: trimmedArg(req, "descriptionOverwrite"),
		MDText:               req.GetString("mdText", ""),
		Tags:                 splitTags(req.GetString("tags", "")),
	}

	created, err := t.api.SaveWeblink(ctx, saveReq)
	if err != nil {
		return errorResult("save_weblink", err), nil
	}

	t.logger.Debug("Weblink saved.", slog.String("space_id", spaceID))

	var sb strings.Builder
	sb.WriteString("## Weblink saved\n\n")
	fmt.Fprintf(&sb, "- URL: %s\n", rawURL)
	fmt.Fprintf(&sb, "- Space: `%s`\n", spaceID)
	if len(saveReq.Tags) > 0 {
		fmt.Fprintf(&sb, "- Tags: %s\n", strings.Join(saveReq.Tags, ", "))
	}

	return successResult("save_weblink", sb.String(), map[string]any{
		"spaceId": spaceID,
		"url":     rawURL,
		"created": created,
	}), nil
}

// splitTags turns a comma-separated tag string into trimmed, non-empty names.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SaveToDailyNoteTool handles the save_to_daily_note MCP tool, backed by
// the POST /save-to-daily-note endpoint.
type SaveToDailyNoteTool struct {
	api            CapacitiesAPI
	defaultSpaceID string
	logger         *slog.Logger
}

// NewSaveToDailyNoteTool creates a SaveToDailyNoteTool with its dependencies.
func NewSaveToDailyNoteTool(api CapacitiesAPI, defaultSpaceID string, logger *slog.Logger) *SaveToDailyNoteTool {
	return &SaveToDailyNoteTool{
		api:            api,
		defaultSpaceID: defaultSpaceID,
		logger:         logger.With("tool", "save_to_daily_note"),
	}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveToDailyNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("save_to_daily_note",
		mcp.WithDescription(
			"Append markdown text to today's daily note in a Capacities space.",
		),
		mcp.WithString("mdText",
			mcp.Required(),
			mcp.Description("Markdown text to append. Must be non-empty."),
		),
		mcp.WithString("spaceId",
			mcp.Description("Space UUID. Falls back to the configured default space when omitted."),
		),
		mcp.WithBoolean("noTimeStamp",
			mcp.Description("Skip the timestamp Capacities normally prefixes. Defaults to false."),
		),
	)
}

// Handle validates the text, resolves the space, and appends to the note.
func (t *SaveToDailyNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mdText := req.GetString("mdText", "")
	if strings.TrimSpace(mdText) == "" {
		return errorResult("save_to_daily_note", domain.NewValidationError(
			"mdText is required and must be non-empty",
			"Pass the markdown text to append to the daily note.",
		)), nil
	}

	spaceID, err := domain.ResolveSpaceID(req.GetString("spaceId", ""), t.defaultSpaceID)
	if err != nil {
		return errorResult("save_to_daily_note", err), nil
	}

	ack, err := t.api.SaveToDailyNote(ctx, domain.SaveToDailyNoteRequest{
		SpaceID:     spaceID,
		MDText:      mdText,
		NoTimeStamp: boolArg(req, "noTimeStamp", false),
	})
	if err != nil {
		return errorResult("save_to_daily_note", err), nil
	}

	t.logger.Debug("Daily note updated.", slog.String("space_id", spaceID))

	markdown := fmt.Sprintf("## Saved to daily note\n\n- Space: `%s`\n- Characters: %d\n", spaceID, len(mdText))
	return successResult("save_to_daily_note", markdown, map[string]any{
		"spaceId": spaceID,
		"result":  ack,
	}), nil
}
