// Package parser reads CoNLL-U text into sentence.TokenList values.
package parser

import (
	"sort"

	"github.com/revelaction/conllu/field"
	"github.com/revelaction/conllu/sentence"
)

// FallbackKey registers a metadata parser for comment keys that have no
// parser of their own.
const FallbackKey = "__fallback__"

// ColumnsKey is the CoNLL-U Plus comment declaring the column names.
const ColumnsKey = "global.columns"

// DefaultFields returns a fresh copy of the ten CoNLL-U columns.
func DefaultFields() []string {
	return []string{"id", "form", "lemma", "upos", "xpos", "feats", "head", "deprel", "deps", "misc"}
}

// FieldParser parses column i of a split token line. It gets all the
// columns so that a parser may look at its neighbours.
type FieldParser func(columns []string, i int) (field.Value, error)

// MetadataParser turns a comment into zero or more metadata entries. value
// is "" when the comment has no value. Returning no pairs falls through to
// the default handling: keep the comment if it has a value, drop it
// otherwise.
type MetadataParser func(key, value string) ([]sentence.Pair, error)

// Column adapts a single value parse function to a FieldParser.
func Column(fn func(string) (field.Value, error)) FieldParser {
	return func(columns []string, i int) (field.Value, error) {
		return fn(columns[i])
	}
}

func nullable(columns []string, i int) (field.Value, error) {
	return field.ParseNullable(columns[i]), nil
}

func dict(columns []string, i int) (field.Value, error) {
	return field.ParseDict(columns[i]), nil
}

// DefaultFieldParsers returns a fresh copy of the built in column parsers.
// The form column has none and is kept verbatim, "_" included.
func DefaultFieldParsers() map[string]FieldParser {
	return map[string]FieldParser{
		"id":     Column(field.ParseID),
		"lemma":  nullable,
		"upos":   nullable,
		"xpos":   nullable,
		"feats":  dict,
		"head":   Column(field.ParseInt),
		"deprel": nullable,
		"deps":   Column(field.ParsePairedList),
		"misc":   dict,
	}
}

func keepPair(key, value string) ([]sentence.Pair, error) {
	if value == "" {
		return []sentence.Pair{{Key: key}}, nil
	}
	return []sentence.Pair{{Key: key, Value: value}}, nil
}

// DefaultMetadataParsers returns a fresh copy of the built in comment
// parsers: newdoc and newpar are valid without a value.
func DefaultMetadataParsers() map[string]MetadataParser {
	return map[string]MetadataParser{
		"newdoc": keepPair,
		"newpar": keepPair,
	}
}

// Config is the caller supplied parse configuration. The zero value parses
// standard CoNLL-U, taking the columns from a global.columns comment when
// the first sentence starts with one.
type Config struct {
	// Fields are the column names in order.
	Fields []string

	// FieldParsers override or extend DefaultFieldParsers. When they do not
	// cover exactly Fields, the defaults fill the gaps.
	FieldParsers map[string]FieldParser

	// MetadataParsers override or extend DefaultMetadataParsers.
	MetadataParsers map[string]MetadataParser

	// StrictIDs rejects the word id 0.
	StrictIDs bool

	// PerSentenceColumns honours a global.columns comment at the start of
	// any sentence, not only the first one.
	PerSentenceColumns bool
}

func (c Config) fields() []string {
	if len(c.Fields) == 0 {
		return DefaultFields()
	}
	return c.Fields
}

// fieldParsers merges the custom parsers with the defaults and registers
// each part of speech parser under its alias.
func (c Config) fieldParsers(fields []string) map[string]FieldParser {
	var parsers map[string]FieldParser

	switch {
	case len(c.FieldParsers) == 0:
		parsers = DefaultFieldParsers()
		if c.StrictIDs {
			parsers["id"] = Column(field.ParseIDStrict)
		}

	case !sameKeys(c.FieldParsers, fields):
		parsers = DefaultFieldParsers()
		if c.StrictIDs {
			parsers["id"] = Column(field.ParseIDStrict)
		}
		for k, p := range c.FieldParsers {
			parsers[k] = p
		}

	default:
		parsers = make(map[string]FieldParser, len(c.FieldParsers))
		for k, p := range c.FieldParsers {
			parsers[k] = p
		}
	}

	for _, pair := range [][2]string{{"xpos", "xpostag"}, {"upos", "upostag"}} {
		a, b := pair[0], pair[1]
		if _, ok := parsers[b]; !ok {
			if p, ok := parsers[a]; ok {
				parsers[b] = p
			}
		}
		if _, ok := parsers[a]; !ok {
			if p, ok := parsers[b]; ok {
				parsers[a] = p
			}
		}
	}

	return parsers
}

func (c Config) metadataParsers() map[string]MetadataParser {
	parsers := DefaultMetadataParsers()
	for k, p := range c.MetadataParsers {
		parsers[k] = p
	}
	return parsers
}

func sameKeys(parsers map[string]FieldParser, fields []string) bool {
	if len(parsers) != len(fields) {
		return false
	}
	keys := make([]string, 0, len(parsers))
	for k := range parsers {
		keys = append(keys, k)
	}
	sorted := append([]string(nil), fields...)
	sort.Strings(keys)
	sort.Strings(sorted)
	for i := range keys {
		if keys[i] != sorted[i] {
			return false
		}
	}
	return true
}
