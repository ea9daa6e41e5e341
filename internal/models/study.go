package models

// Theme is the display theme of a study session
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// VoiceCommand is a parsed navigation target; nil fields were not resolved
type VoiceCommand struct {
	Book    *string `json:"book,omitempty"`
	Chapter *int    `json:"chapter,omitempty"`
}

// Resolved reports whether any field was resolved
func (c VoiceCommand) Resolved() bool {
	return c.Book != nil || c.Chapter != nil
}

// VoiceRequest carries a speech transcript. CurrentBook bounds a spoken
// chapter when the transcript names no book.
type VoiceRequest struct {
	Transcript  string `json:"transcript"`
	CurrentBook string `json:"current_book,omitempty"`
}

// OpenNoteRequest selects the verse to open the note editor on
type OpenNoteRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// NavigateRequest moves the session; omitted fields are left unchanged
type NavigateRequest struct {
	Book    *string `json:"book"`
	Chapter *int    `json:"chapter"`
}

// PreferencesRequest updates display preferences
type PreferencesRequest struct {
	FontSize    *int   `json:"font_size"`
	Theme       *Theme `json:"theme"`
	ToggleTheme bool   `json:"toggle_theme"`
}

// NoteEditorState is the state of the note editor
type NoteEditorState struct {
	Open      bool     `json:"open"`
	Key       VerseKey `json:"key,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Text      string   `json:"text"`
}

// ExplanationState is the explanation panel of a study session
type ExplanationState struct {
	Loading bool         `json:"loading"`
	Current *Explanation `json:"current,omitempty"`
}

// StudyState is a snapshot of a study session
type StudyState struct {
	Book          string           `json:"book"`
	Chapter       int              `json:"chapter"`
	Books         []BookSummary    `json:"books"`
	Verses        []ChapterVerse   `json:"verses"`
	FontSize      int              `json:"font_size"`
	Theme         Theme            `json:"theme"`
	SearchTerm    string           `json:"search_term"`
	SearchResults []SearchResult   `json:"search_results"`
	NoteEditor    NoteEditorState  `json:"note_editor"`
	Explanation   ExplanationState `json:"explanation"`
}

// CapabilitiesResponse reports optional capabilities of the service
type CapabilitiesResponse struct {
	Voice bool `json:"voice"`
}
