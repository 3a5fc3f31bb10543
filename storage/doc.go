package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
)

// ReadDoc parses a whole CoNLL-U document. Labels are taken from the
// labels comment of the first sentence. Fields are the custom columns
// shared by every sentence; they stay empty when sentences declare
// different columns, each sentence then keeps its own declaration.
func ReadDoc(r io.Reader, cfg parser.Config) (sent.Doc, error) {
	pr := parser.NewReader(r, cfg)

	var doc sent.Doc
	var fields []string
	mixed := false
	for {
		tl, err := pr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sent.Doc{}, fmt.Errorf("sentence %d: %w", len(doc.Sentences)+1, err)
		}

		cols := pr.Fields()
		if len(doc.Sentences) == 0 {
			fields = cols
		} else if !slices.Equal(fields, cols) {
			mixed = true
		}
		doc.Sentences = append(doc.Sentences, tl)
	}

	if !mixed && len(fields) > 0 && !slices.Equal(fields, parser.DefaultFields()) {
		doc.Fields = fields
	}
	if len(doc.Sentences) > 0 {
		doc.Labels = LabelsFrom(doc.Sentences[0])
	}
	return doc, nil
}

// WriteDoc serializes the sentences of doc. The first sentence gets the
// global.columns declaration (its own, or the doc Fields when custom) and
// the labels comment, in that order, ahead of the rest of its metadata.
func WriteDoc(w io.Writer, doc sent.Doc) error {
	bw := bufio.NewWriter(w)
	for i, tl := range doc.Sentences {
		if i == 0 {
			tl = withHeader(tl, doc)
		}
		s, err := tl.Serialize()
		if err != nil {
			return fmt.Errorf("sentence %d: %w", i+1, err)
		}
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func withHeader(tl *sent.TokenList, doc sent.Doc) *sent.TokenList {
	header := sent.NewMetadata()
	if cols, ok := tl.Metadata.Get(parser.ColumnsKey); ok {
		header.Set(parser.ColumnsKey, cols)
	} else if len(doc.Fields) > 0 && !slices.Equal(doc.Fields, parser.DefaultFields()) {
		header.Set(parser.ColumnsKey, strings.ToUpper(strings.Join(doc.Fields, " ")))
	}
	if len(doc.Labels) > 0 {
		header.Set(LabelsKey, strings.Join(doc.Labels, ","))
	}
	if header.Len() == 0 {
		return tl
	}

	// header keys come first; labels keep the doc value
	md := header.Clone()
	md.Merge(tl.Metadata)
	md.Merge(header)
	out := tl.Copy()
	out.Metadata = md
	return out
}

// ParseLabels splits a comma separated label list.
func ParseLabels(s string) []string {
	var labels []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// LabelsFrom returns the labels comment of a sentence.
func LabelsFrom(tl *sent.TokenList) []string {
	if tl == nil || tl.Metadata == nil {
		return nil
	}
	return ParseLabels(tl.Metadata.GetString(LabelsKey))
}

// HasLabels reports whether docLabels contains every label in want.
func HasLabels(docLabels, want []string) bool {
	for _, w := range want {
		if !slices.Contains(docLabels, w) {
			return false
		}
	}
	return true
}

// MatchLabel reports whether one of docLabels contains match. An empty
// match matches everything.
func MatchLabel(docLabels []string, match string) bool {
	if match == "" {
		return true
	}
	for _, l := range docLabels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

// Lemmas returns the distinct non null lemmas of a sentence, in order of
// first appearance.
func Lemmas(tl *sent.TokenList) []string {
	seen := map[string]bool{}
	var lemmas []string
	for _, t := range tl.Tokens {
		l := t.Lemma()
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		lemmas = append(lemmas, l)
	}
	return lemmas
}

// HasLemmas reports whether the sentence contains every lemma.
func HasLemmas(tl *sent.TokenList, lemmas []string) bool {
	if len(lemmas) == 0 {
		return true
	}
	have := Lemmas(tl)
	for _, l := range lemmas {
		if !slices.Contains(have, l) {
			return false
		}
	}
	return true
}

// UniqueLabels merges label lists into a sorted set, keeping those that
// contain pattern.
func UniqueLabels(pattern string, lists ...[]string) []string {
	set := map[string]bool{}
	for _, list := range lists {
		for _, l := range list {
			if strings.Contains(l, pattern) {
				set[l] = true
			}
		}
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
