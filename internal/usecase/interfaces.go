package usecase

import (
	"context"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// CapacitiesAPI is the outbound port the tool handlers call. It is
// implemented by the capacities adapter and mocked in tests.
type CapacitiesAPI interface {
	// ListSpaces fetches all spaces visible to the configured token.
	ListSpaces(ctx context.Context) ([]domain.Space, error)

	// SpaceInfo fetches the structure metadata of one space.
	SpaceInfo(ctx context.Context, spaceID string) ([]domain.Structure, error)

	// Search performs a keyword lookup in one space. Implementations reject
	// an empty search term without issuing a network call.
	Search(ctx context.Context, searchTerm, spaceID string) ([]domain.SearchResult, error)

	// SaveWeblink saves a web link into a space.
	SaveWeblink(ctx context.Context, req domain.SaveWeblinkRequest) (map[string]any, error)

	// SaveToDailyNote appends markdown to today's daily note in a space.
	SaveToDailyNote(ctx context.Context, req domain.SaveToDailyNoteRequest) (map[string]any, error)
}
