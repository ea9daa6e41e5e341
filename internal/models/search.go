package models

// SearchResult is a verse matching a search term
type SearchResult struct {
	Book      string `json:"book"`
	Chapter   int    `json:"chapter"`
	Verse     int    `json:"verse"`
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// SearchRequest is the request for verse search
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse is the response for verse search
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
