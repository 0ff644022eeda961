package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

const (
	testSpaceID      = "123e4567-e89b-42d3-a456-426614174000"
	otherSpaceID     = "99999999-9999-4999-8999-999999999999"
	testStructureID  = "RootPage"
	otherStructureID = "MediaWebResource"
)

// MockCapacitiesAPI is a testify mock of the outbound port.
type MockCapacitiesAPI struct {
	mock.Mock
}

func (m *MockCapacitiesAPI) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	args := m.Called(ctx)
	var spaces []domain.Space
	if v := args.Get(0); v != nil {
		spaces = v.([]domain.Space)
	}
	return spaces, args.Error(1)
}

func (m *MockCapacitiesAPI) SpaceInfo(ctx context.Context, spaceID string) ([]domain.Structure, error) {
	args := m.Called(ctx, spaceID)
	var structures []domain.Structure
	if v := args.Get(0); v != nil {
		structures = v.([]domain.Structure)
	}
	return structures, args.Error(1)
}

func (m *MockCapacitiesAPI) Search(ctx context.Context, searchTerm, spaceID string) ([]domain.SearchResult, error) {
	args := m.Called(ctx, searchTerm, spaceID)
	var results []domain.SearchResult
	if v := args.Get(0); v != nil {
		results = v.([]domain.SearchResult)
	}
	return results, args.Error(1)
}

func (m *MockCapacitiesAPI) SaveWeblink(ctx context.Context, req domain.SaveWeblinkRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	var created map[string]any
	if v := args.Get(0); v != nil {
		created = v.(map[string]any)
	}
	return created, args.Error(1)
}

func (m *MockCapacitiesAPI) SaveToDailyNote(ctx context.Context, req domain.SaveToDailyNoteRequest) (map[string]any, error) {
	args := m.Called(ctx, req)
	var ack map[string]any
	if v := args.Get(0); v != nil {
		ack = v.(map[string]any)
	}
	return ack, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRequest builds a CallToolRequest with the given arguments.
func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the markdown text of the first content block.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content block is not text")
	return text.Text
}

// structured extracts the structured payload of a result.
func structured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	payload, ok := res.StructuredContent.(map[string]any)
	require.True(t, ok, "structured content is not a map")
	return payload
}

// requireToolError asserts that res is the error shape carrying the given
// error code.
func requireToolError(t *testing.T, res *mcp.CallToolResult, code domain.ErrorKind) map[string]any {
	t.Helper()
	require.True(t, res.IsError, "expected an error result")
	payload := structured(t, res)
	errPayload, ok := payload["error"].(map[string]any)
	require.True(t, ok, "error result missing error payload")
	require.Equal(t, string(code), errPayload["code"])
	require.NotEmpty(t, errPayload["action"])
	return errPayload
}

// requireUnsupported asserts the explicit-unsupported shape.
func requireUnsupported(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.False(t, res.IsError, "unsupported is not an error outcome")
	payload := structured(t, res)
	require.Equal(t, false, payload["supported"])
	require.NotEmpty(t, payload["reason"])
	require.Equal(t, availableCapabilities, payload["availableCapabilities"])
	return payload
}
