// Package stat aggregates corpus counts over parsed documents.
package stat

import (
	"sort"

	sent "github.com/revelaction/conllu/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumDocs      int
	NumSentences int

	// NumTokens counts syntactic words: tokens with a single id.
	NumTokens int

	// NumMultiword counts range ids (1-2), NumEmpty decimal ids (1.1).
	NumMultiword int
	NumEmpty     int

	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	UPOS   map[string]int
	Deprel map[string]int
}

// Count is one entry of a histogram.
type Count struct {
	Key   string
	Count int
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		UPOS:                 map[string]int{},
		Deprel:               map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Get returns the counts so far. The mean is 0 before any sentence.
func (h *Handler) Get() Stats {
	s := h.stats
	if s.NumSentences > 0 {
		s.TokensPerSentenceMean = s.NumTokens / s.NumSentences
	}
	return s
}

// Aggregate adds the sentences of doc to the counts.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumDocs++
	for _, tl := range doc.Sentences {
		h.AggregateSentence(tl)
	}
}

func (h *Handler) AggregateSentence(tl *sent.TokenList) {
	h.stats.NumSentences++

	words := 0
	for _, t := range tl.Tokens {
		id, ok := t.ID()
		switch {
		case ok && id.IsRange():
			h.stats.NumMultiword++
			continue
		case ok && id.IsDecimal():
			h.stats.NumEmpty++
			continue
		}

		words++
		if upos := t.UPOS(); upos != "" {
			h.stats.UPOS[upos]++
		}
		if deprel := t.Deprel(); deprel != "" {
			h.stats.Deprel[deprel]++
		}
	}

	h.stats.NumTokens += words
	h.stats.TokensPerSentenceDis[words]++
}

// Sorted orders a histogram by descending count, then key.
func Sorted(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for k, c := range m {
		counts = append(counts, Count{Key: k, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Key < counts[j].Key
	})
	return counts
}
