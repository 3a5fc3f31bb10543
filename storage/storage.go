package storage

import (
	"errors"

	sent "github.com/revelaction/conllu/sentence"
)

var (
	ErrDocNotFound = errors.New("doc not found")
	ErrDocExists   = errors.New("doc already exists")
)

// LabelsKey is the metadata comment on the first sentence of a document
// that lists its labels, comma separated.
const LabelsKey = "labels"

// Cursor for paginated lemma-based queries
type Cursor int64

// Candidate is a stored sentence returned by FindCandidates.
type Candidate struct {
	// RowID is the position of the sentence in the repository. Cursors
	// are RowIDs.
	RowID    int64
	DocID    int
	DocTitle string

	// SentID is the position of the sentence in its doc, from 0.
	SentID   int
	Sentence *sent.TokenList
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels, Fields) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Sentences are not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentences containing ALL given lemmas in documents carrying ALL labels,
	// resuming after the given cursor. It calls onCandidate for each result.
	// Returns the new cursor and any error. The cursor does not move when nothing is left.
	FindCandidates(lemmas []string, labels []string, after Cursor, limit int, onCandidate func(Candidate) error) (Cursor, error)

	// Labels returns all unique labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	Labels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(labels []string, cb func(current, total int, name string)) error
}
