package match

import (
	"github.com/revelaction/conllu/render"
	sent "github.com/revelaction/conllu/sentence"
)

// Matcher matches a Doc (or a set of Docs) against an Expr.
// A set of `Docs` can be matched by repeated `Match` calls to the Matcher.
type Matcher struct {
	Expr Expr

	// compiled once from Expr
	query sent.Query

	sentences []*render.Match
}

func NewMatcher(expr Expr) *Matcher {
	return &Matcher{Expr: expr, query: expr.Query()}
}

// Match adds the sentences of doc with at least one matching token.
func (m *Matcher) Match(doc sent.Doc) {
	for i, tl := range doc.Sentences {
		if sm := m.MatchSentence(doc.Id, doc.Title, i, tl); sm != nil {
			m.sentences = append(m.sentences, sm)
		}
	}
}

// MatchSentence returns nil when no token of tl satisfies the expression.
func (m *Matcher) MatchSentence(docID int, title string, sentID int, tl *sent.TokenList) *render.Match {
	var matches []*sent.Token
	for _, t := range tl.Tokens {
		if m.query.Match(t) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	return &render.Match{
		DocID:    docID,
		DocTitle: title,
		SentID:   sentID,
		Sentence: tl,
		Matches:  matches,
	}
}

// Sentences returns the matched sentences in the order they were found.
func (m *Matcher) Sentences() []*render.Match {
	return m.sentences
}
