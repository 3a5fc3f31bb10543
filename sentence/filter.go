package sentence

import (
	"strings"

	"github.com/revelaction/conllu/field"
)

// PathSeparator separates the segments of a nested field path, as in
// "feats.Degree".
const PathSeparator = "."

// Predicate decides on a resolved value, which is nil when any segment of
// the path is missing.
type Predicate func(v field.Value) bool

// Query maps field paths to wanted values. A wanted value may be a
// Predicate, a field.Value (nil included), a string or an int. All
// conditions must hold.
type Query map[string]any

// Resolve follows a field path: the first segment names a column, the
// following ones index into dictionary columns.
func (t *Token) Resolve(path string) field.Value {
	segments := strings.Split(path, PathSeparator)

	v, ok := t.Get(segments[0])
	if !ok {
		return nil
	}
	for _, seg := range segments[1:] {
		d, isDict := v.(*field.Dict)
		if !isDict || d == nil {
			return nil
		}
		if v, ok = d.Get(seg); !ok {
			return nil
		}
	}
	return v
}

// Match reports whether t satisfies every condition of q.
func (q Query) Match(t *Token) bool {
	for path, want := range q {
		if !matchValue(t.Resolve(path), want) {
			return false
		}
	}
	return true
}

func matchValue(got field.Value, want any) bool {
	switch w := want.(type) {
	case nil:
		return got == nil
	case Predicate:
		return w(got)
	case func(field.Value) bool:
		return w(got)
	case string:
		switch g := got.(type) {
		case field.String:
			return string(g) == w
		case field.Int, field.ID:
			s, _ := field.Format(g)
			return s == w
		}
		return false
	case int:
		switch g := got.(type) {
		case field.Int:
			return int(g) == w
		case field.ID:
			return g.IsSingle() && g.Start == w
		}
		return false
	case field.Value:
		return field.Equal(got, w)
	}
	return false
}

// Filter returns the tokens matching q, in order, as a new TokenList
// carrying a copy of the metadata.
func (tl *TokenList) Filter(q Query) *TokenList {
	var tokens []*Token
	for _, t := range tl.Tokens {
		if q.Match(t) {
			tokens = append(tokens, t)
		}
	}
	return NewTokenList(tokens, tl.Metadata.Clone())
}
