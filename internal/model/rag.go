package model

// Source is a citation back to a document that contributed retrieved context
// to an answer. Within one response there is at most one Source per document.
type Source struct {
	Content  string  `json:"content"`
	Filename string  `json:"filename"`
	Metadata JSONMap `json:"metadata"`
}

// RagResponse is the answer to a question plus the deduplicated sources it
// was grounded on.
type RagResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}
