package models

// ExplanationKind tags the variant of an Explanation
type ExplanationKind string

const (
	ExplanationRemote   ExplanationKind = "remote"
	ExplanationFallback ExplanationKind = "fallback"
)

// FallbackDetails carries the canned study material shown when the
// remote explanation could not be obtained
type FallbackDetails struct {
	Greek       string `json:"greek"`
	Context     string `json:"context"`
	CrossRef    string `json:"cross_ref"`
	Commentary  string `json:"commentary"`
	Application string `json:"application"`
}

// Explanation is either a remote explanation or the local fallback.
// Fallback is set only when Kind is ExplanationFallback.
type Explanation struct {
	Kind      ExplanationKind  `json:"kind"`
	Key       VerseKey         `json:"key"`
	Reference string           `json:"reference"`
	VerseText string           `json:"verse_text"`
	Text      string           `json:"text"`
	Fallback  *FallbackDetails `json:"fallback,omitempty"`
}

// IsFallback reports whether the explanation is the local fallback
func (e Explanation) IsFallback() bool {
	return e.Kind == ExplanationFallback
}

// ExplainRequest is the request for a verse explanation
type ExplainRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

// CompletionRequest is the body accepted by the explanation proxy
type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

// CompletionResponse is the body returned by the explanation proxy
type CompletionResponse struct {
	Explanation string `json:"explanation"`
	Greek       string `json:"greek,omitempty"`
	Context     string `json:"context,omitempty"`
	CrossRef    string `json:"crossRef,omitempty"`
	Commentary  string `json:"commentary,omitempty"`
	Application string `json:"application,omitempty"`
}
