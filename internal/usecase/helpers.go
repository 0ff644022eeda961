// Package usecase implements the MCP tool handlers of capacities-mcp.
//
// Each tool is a struct with its dependencies injected via constructor,
// a Definition() returning the mcp.Tool schema, and a Handle() processing
// the request. Handlers are stateless across calls: every invocation
// validates its input, resolves the effective space, calls the Capacities
// API when the capability exists, and assembles exactly one of three result
// shapes: success, explicit-unsupported, or a classified error.
package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// trimmedArg extracts a string argument with surrounding whitespace removed.
// Missing arguments come back as "".
func trimmedArg(req mcp.CallToolRequest, key string) string {
	return strings.TrimSpace(req.GetString(key, ""))
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers arrive as float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// hasArg reports whether the argument was supplied at all, including an
// explicit JSON null.
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}

// dateFilters is the normalized single-date/range filter set shared by
// search_entities and list_tasks.
type dateFilters struct {
	Date string
	From string
	To   string
}

func (f dateFilters) empty() bool {
	return f.Date == "" && f.From == "" && f.To == ""
}

// normalizeDateFilters validates and canonicalizes the date inputs of a
// tool call. A single date and a range are mutually exclusive, a range must
// be fully paired, and the range must be ordered. Canonical YYYY-MM-DD
// compares lexicographically in chronological order, so plain string
// comparison is enough for the inversion check.
func normalizeDateFilters(date, from, to string, now time.Time) (dateFilters, error) {
	var out dateFilters

	date = strings.TrimSpace(date)
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)

	if date != "" && (from != "" || to != "") {
		return out, domain.NewValidationError(
			"date and dateFrom/dateTo are mutually exclusive",
			"Pass either a single date or a dateFrom/dateTo pair, not both.",
		)
	}
	if (from == "") != (to == "") {
		return out, domain.NewValidationError(
			"dateFrom and dateTo must be supplied together",
			"Pass both dateFrom and dateTo to filter by a date range.",
		)
	}

	var err error
	if date != "" {
		if out.Date, err = domain.NormalizeDate(date, now); err != nil {
			return dateFilters{}, err
		}
	}
	if from != "" {
		if out.From, err = domain.NormalizeDate(from, now); err != nil {
			return dateFilters{}, err
		}
		if out.To, err = domain.NormalizeDate(to, now); err != nil {
			return dateFilters{}, err
		}
		if out.From > out.To {
			return dateFilters{}, domain.NewValidationError(
				fmt.Sprintf("dateFrom %s is after dateTo %s", out.From, out.To),
				"Swap the range bounds so dateFrom is not after dateTo.",
			)
		}
	}

	return out, nil
}

// addTo copies the non-empty filters into a request-echo map.
func (f dateFilters) addTo(m map[string]any) {
	if f.Date != "" {
		m["date"] = f.Date
	}
	if f.From != "" {
		m["dateFrom"] = f.From
		m["dateTo"] = f.To
	}
}
