package model

// Document classification values accepted by the search filter.
const (
	DocTypeClassified   = "CLASSIFICATO"
	DocTypeUnclassified = "NON CLASSIFICATO"
)

// StructureNode is one node of the organisational structure tree the
// document search can be restricted to.
type StructureNode struct {
	Code        string           `json:"code"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Children    []*StructureNode `json:"children,omitempty"`
}

// DocumentSearchFilter carries every criterion of the document search form.
// Dates are ISO-8601 (yyyy-mm-dd) strings; empty means "not set".  Sizes are
// in KB and nil when not set.
type DocumentSearchFilter struct {
	FileName      string         `json:"file_name"`
	Type          string         `json:"type"`
	DateFrom      string         `json:"date_from"`
	DateTo        string         `json:"date_to"`
	Author        string         `json:"author"`
	Format        string         `json:"format"`
	SizeMinKB     *float64       `json:"size_min_kb"`
	SizeMaxKB     *float64       `json:"size_max_kb"`
	Title         string         `json:"title"`
	Tags          string         `json:"tags"`
	MetadataKey   string         `json:"metadata_key"`
	MetadataValue string         `json:"metadata_value"`
	Structure     *StructureNode `json:"structure,omitempty"`
}

// DocumentResult is one row of the (mock) document search results.
type DocumentResult struct {
	FileName string `json:"file_name"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Size     string `json:"size"`
}

// FilterBadge is a "label: value" summary of one active search criterion.
type FilterBadge struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DocumentSearchResult groups the result rows with the active criteria.
type DocumentSearchResult struct {
	Results []DocumentResult `json:"results"`
	Filters []FilterBadge    `json:"filters"`
}
