package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	ref := time.Date(2026, 2, 19, 15, 4, 5, 0, time.Local)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "yesterday keyword", input: "yesterday", want: "2026-02-18"},
		{name: "yesterday is case-insensitive", input: "YeStErDaY", want: "2026-02-18"},
		{name: "yesterday with whitespace", input: "  yesterday  ", want: "2026-02-18"},
		{name: "absolute date", input: "2024-06-01", want: "2024-06-01"},
		{name: "absolute date with whitespace", input: " 2024-06-01 ", want: "2024-06-01"},
		{name: "leap day accepted", input: "2024-02-29", want: "2024-02-29"},
		{name: "impossible day rejected", input: "2024-02-30", wantErr: true},
		{name: "non-leap feb 29 rejected", input: "2023-02-29", wantErr: true},
		{name: "month zero rejected", input: "2024-00-10", wantErr: true},
		{name: "month 13 rejected", input: "2024-13-01", wantErr: true},
		{name: "day zero rejected", input: "2024-05-00", wantErr: true},
		{name: "missing zero padding rejected", input: "2024-6-01", wantErr: true},
		{name: "slash format rejected", input: "2024/06/01", wantErr: true},
		{name: "datetime rejected", input: "2024-06-01T00:00:00Z", wantErr: true},
		{name: "tomorrow keyword rejected", input: "tomorrow", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "whitespace only rejected", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input, ref)
			if tt.wantErr {
				require.Error(t, err)
				toolErr := Classify(err)
				assert.Equal(t, KindValidation, toolErr.Kind)
				assert.Contains(t, toolErr.Message, "yesterday")
				assert.NotEmpty(t, toolErr.Action)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Normalizing an already-canonical date must yield the same string.
func TestNormalizeDate_Idempotent(t *testing.T) {
	ref := time.Date(2026, 2, 19, 12, 0, 0, 0, time.Local)

	for _, input := range []string{"2024-02-29", "1999-12-31", "2026-01-01"} {
		first, err := NormalizeDate(input, ref)
		require.NoError(t, err)
		second, err := NormalizeDate(first, ref)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}

	// The yesterday keyword resolves to a canonical date, which is then a
	// fixed point.
	resolved, err := NormalizeDate("yesterday", ref)
	require.NoError(t, err)
	again, err := NormalizeDate(resolved, ref)
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
}

// Yesterday must mean the previous local calendar day, including across a
// month boundary.
func TestNormalizeDate_YesterdayMonthBoundary(t *testing.T) {
	ref := time.Date(2026, 3, 1, 0, 30, 0, 0, time.Local)
	got, err := NormalizeDate("yesterday", ref)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", got)
}
