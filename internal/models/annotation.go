package models

// HighlightToggleResponse is returned after toggling a highlight
type HighlightToggleResponse struct {
	Key         VerseKey `json:"key"`
	Highlighted bool     `json:"highlighted"`
}

// NoteRequest carries note text
type NoteRequest struct {
	Text string `json:"text"`
}

// NoteResponse is a single note
type NoteResponse struct {
	Key       VerseKey `json:"key"`
	Reference string   `json:"reference"`
	Text      string   `json:"text"`
}
