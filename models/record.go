package models

// Record is one newline-delimited JSON corpus entry. Only the text payload is
// consumed; the corpus carries per-work metadata (author, genre, ratings) that
// the pipeline ignores on decode.
type Record struct {
	Text string `json:"text"`
}
