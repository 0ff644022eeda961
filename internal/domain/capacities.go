// Package domain holds the pure core of the server: the error taxonomy,
// date normalization, space-identifier resolution, and the read-only
// projections of the Capacities API's JSON shapes. Nothing in this package
// performs I/O.
package domain

// Space is one entry of the GET /spaces response: a top-level container of
// entities, identified by UUID.
type Space struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon,omitempty"`
}

// Structure is a space-scoped entity schema ("object type") from the
// GET /space-info response. PluralName is optional metadata Capacities
// attaches to built-in structures.
type Structure struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PluralName string `json:"pluralName,omitempty"`
}

// SearchResult is one hit of the POST /search response.
type SearchResult struct {
	ID          string `json:"id"`
	StructureID string `json:"structureId"`
	Title       string `json:"title"`
}

// SpacesResponse is the body of GET /spaces.
type SpacesResponse struct {
	Spaces []Space `json:"spaces"`
}

// SpaceInfoResponse is the body of GET /space-info.
type SpaceInfoResponse struct {
	Structures []Structure `json:"structures"`
}

// SearchResponse is the body of POST /search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// SaveWeblinkRequest is the body of POST /save-weblink.
type SaveWeblinkRequest struct {
	SpaceID              string   `json:"spaceId"`
	URL                  string   `json:"url"`
	TitleOverwrite       string   `json:"titleOverwrite,omitempty"`
	DescriptionOverwrite string   `json:"descriptionOverwrite,omitempty"`
	MDText               string   `json:"mdText,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
}

// SaveToDailyNoteRequest is the body of POST /save-to-daily-note.
type SaveToDailyNoteRequest struct {
	SpaceID     string `json:"spaceId"`
	MDText      string `json:"mdText"`
	NoTimeStamp bool   `json:"noTimeStamp,omitempty"`
}
