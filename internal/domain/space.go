package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidSpaceID reports whether s is a canonical 8-4-4-4-12 UUID with a
// version in 1..5 and the RFC 4122 variant. Case-insensitive; the shorthand
// forms uuid.Parse otherwise accepts (braces, urn prefix, no hyphens) are
// rejected.
func ValidSpaceID(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	if v := u.Version(); v < 1 || v > 5 {
		return false
	}
	return u.Variant() == uuid.RFC4122
}

// ResolveSpaceID picks the effective space identifier for a call: the
// explicit value wins when non-empty after trimming, otherwise the
// configured default. The winning candidate must be a valid UUID no matter
// which source supplied it. Resolution failures happen before any remote
// call is made.
func ResolveSpaceID(explicit, defaultID string) (string, error) {
	candidate := strings.TrimSpace(explicit)
	source := "spaceId"
	if candidate == "" {
		candidate = strings.TrimSpace(defaultID)
		source = "default space id"
	}
	if candidate == "" {
		return "", NewConfigError(
			"no space identifier available",
			"Pass spaceId in the tool input, or set CAPACITIES_DEFAULT_SPACE_ID in the server environment.",
		)
	}
	if !ValidSpaceID(candidate) {
		return "", NewValidationError(
			fmt.Sprintf("%s %q is not a valid UUID", source, candidate),
			"Use the canonical 8-4-4-4-12 UUID form, e.g. 123e4567-e89b-42d3-a456-426614174000.",
		)
	}
	return candidate, nil
}
