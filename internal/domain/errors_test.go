package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Classify(nil))
	})

	t.Run("already classified is returned unchanged", func(t *testing.T) {
		original := NewValidationError("bad input", "fix the input")
		classified := Classify(original)
		assert.Same(t, original, classified)

		// Classifying twice must not re-wrap either.
		assert.Same(t, original, Classify(classified))
	})

	t.Run("unrecognized failure becomes network_error", func(t *testing.T) {
		toolErr := Classify(errors.New("connection reset by peer"))
		require.NotNil(t, toolErr)
		assert.Equal(t, KindNetwork, toolErr.Kind)
		assert.Contains(t, toolErr.Message, "connection reset by peer")
		assert.NotEmpty(t, toolErr.Action)
		assert.Zero(t, toolErr.Status)
	})
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		hints        RetryHints
		wantKind     ErrorKind
		wantInAction string
	}{
		{
			name:         "401 unauthorized",
			status:       401,
			wantKind:     KindAPI,
			wantInAction: "token",
		},
		{
			name:         "404 not found",
			status:       404,
			wantKind:     KindAPI,
			wantInAction: "identifiers",
		},
		{
			name:         "429 with retry-after seconds",
			status:       429,
			hints:        RetryHints{RetryAfter: "5"},
			wantKind:     KindRateLimit,
			wantInAction: "5 seconds",
		},
		{
			name:         "429 with reset timestamp",
			status:       429,
			hints:        RetryHints{RateLimitReset: "1767225600"},
			wantKind:     KindRateLimit,
			wantInAction: "resets at",
		},
		{
			name:         "429 without hints",
			status:       429,
			wantKind:     KindRateLimit,
			wantInAction: "Reduce request frequency",
		},
		{
			name:         "500 server error",
			status:       500,
			wantKind:     KindAPI,
			wantInAction: "backoff",
		},
		{
			name:         "vendor 555 treated as server error",
			status:       555,
			wantKind:     KindAPI,
			wantInAction: "backoff",
		},
		{
			name:         "other 4xx",
			status:       422,
			wantKind:     KindAPI,
			wantInAction: "request shape",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toolErr := FromResponse("GET", "/spaces", tt.status, tt.body, tt.hints)
			require.NotNil(t, toolErr)
			assert.Equal(t, tt.wantKind, toolErr.Kind)
			assert.Equal(t, tt.status, toolErr.Status)
			assert.Contains(t, toolErr.Message, "GET /spaces")
			assert.Contains(t, toolErr.Action, tt.wantInAction)
			assert.NotEqual(t, toolErr.Message, toolErr.Action)
		})
	}

	t.Run("body is appended verbatim", func(t *testing.T) {
		toolErr := FromResponse("POST", "/search", 400, `{"error":"spaceId missing"}`, RetryHints{})
		assert.Contains(t, toolErr.Message, `{"error":"spaceId missing"}`)
	})

	t.Run("malformed retry-after falls back to generic guidance", func(t *testing.T) {
		toolErr := FromResponse("GET", "/spaces", 429, "", RetryHints{RetryAfter: "soon"})
		assert.Contains(t, toolErr.Action, "Reduce request frequency")
	})
}

func TestResponseAnomalyErrors(t *testing.T) {
	empty := NewEmptyBodyError("GET", "/space-info")
	assert.Equal(t, KindAPI, empty.Kind)
	assert.Contains(t, empty.Message, "GET /space-info")
	assert.Zero(t, empty.Status)

	decode := NewDecodeError("POST", "/search", errors.New("invalid character '<'"))
	assert.Equal(t, KindAPI, decode.Kind)
	assert.Contains(t, decode.Message, "POST /search")
	assert.Contains(t, decode.Message, "invalid character")
}

func TestToolErrorError(t *testing.T) {
	err := NewConfigError("missing token", "set the token")
	assert.Equal(t, "config_error: missing token", err.Error())
}
