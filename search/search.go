package search

import (
	"github.com/revelaction/conllu/match"
	"github.com/revelaction/conllu/render"
	"github.com/revelaction/conllu/storage"
)

// Search orchestrates the strategy selection for finding sentences
// that match a filter expression against a document repository.
type Search struct {
	repo   storage.DocReader
	docID  *int
	labels []string
}

// New creates a new Search instance over the given repository.
func New(dr storage.DocReader) *Search {
	return &Search{
		repo: dr,
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// WithLabels restricts the indexed search to documents carrying all labels.
func (s *Search) WithLabels(labels ...string) *Search {
	s.labels = labels
	return s
}

// Sentences returns matched sentences for the given expression, handling
// pagination. The returned cursor is the last candidate examined; it does
// not move when nothing is left.
func (s *Search) Sentences(expr match.Expr, cursor storage.Cursor, limit int, onMatch func(*render.Match) error) (storage.Cursor, error) {
	matcher := match.NewMatcher(expr)

	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return cursor, err
		}
		doc.Id = *s.docID

		// the cursor is the number of sentences already seen
		for i := int(cursor); i < len(doc.Sentences); i++ {
			if limit > 0 && i-int(cursor) >= limit {
				return storage.Cursor(i), nil
			}
			sm := matcher.MatchSentence(doc.Id, doc.Title, i, doc.Sentences[i])
			if sm == nil {
				continue
			}
			if err := onMatch(sm); err != nil {
				return storage.Cursor(i), err
			}
		}
		return storage.Cursor(max(int(cursor), len(doc.Sentences))), nil
	}

	// Strategy 2: Find candidates (indexed search). Without lemma
	// conditions every sentence is a candidate.
	return s.repo.FindCandidates(expr.Lemmas(), s.labels, cursor, limit, func(c storage.Candidate) error {
		sm := matcher.MatchSentence(c.DocID, c.DocTitle, c.SentID, c.Sentence)
		if sm == nil {
			return nil
		}
		return onMatch(sm)
	})
}
