package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

func TestEntityByIDTool_AlwaysUnsupported(t *testing.T) {
	tool := NewEntityByIDTool(testLogger())

	res, err := tool.Handle(context.Background(), newRequest(map[string]any{
		"entityId":    "  obj-1  ",
		"structureId": testStructureID,
		"spaceId":     testSpaceID,
	}))
	require.NoError(t, err)

	payload := requireUnsupported(t, res)
	request, ok := payload["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "obj-1", request["entityId"])
	assert.Equal(t, testStructureID, request["structureId"])
	assert.Equal(t, testSpaceID, request["spaceId"])

	text := resultText(t, res)
	assert.Contains(t, text, "not supported")
	assert.Contains(t, text, "search_entities")
}

func TestEntityByIDTool_MissingIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing entityId", args: map[string]any{"structureId": testStructureID}},
		{name: "blank entityId", args: map[string]any{"entityId": "  ", "structureId": testStructureID}},
		{name: "missing structureId", args: map[string]any{"entityId": "obj-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewEntityByIDTool(testLogger())
			res, err := tool.Handle(context.Background(), newRequest(tt.args))
			require.NoError(t, err)
			requireToolError(t, res, domain.KindValidation)
		})
	}
}
