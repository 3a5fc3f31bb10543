package render

import (
	"encoding/json"

	sent "github.com/revelaction/conllu/sentence"
)

type jsonMatch struct {
	DocID    int              `json:"doc_id"`
	DocTitle string           `json:"doc_title,omitempty"`
	SentID   int              `json:"sent_id"`
	Sentence *sent.TokenList  `json:"sentence"`
	Matches  []jsonMatchToken `json:"matches,omitempty"`
}

type jsonMatchToken struct {
	ID   any    `json:"id"`
	Form string `json:"form"`
}

// json writes the match as one JSON object per line.
func (r *Renderer) json(m *Match) error {
	jm := jsonMatch{
		DocID:    m.DocID,
		DocTitle: m.DocTitle,
		SentID:   m.SentID,
		Sentence: m.Sentence,
	}
	for _, t := range m.Matches {
		jm.Matches = append(jm.Matches, jsonMatchToken{ID: t.Value("id"), Form: t.Form()})
	}

	return json.NewEncoder(r.W).Encode(jm)
}
