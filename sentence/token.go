package sentence

import (
	"strings"

	"github.com/revelaction/conllu/field"
	"github.com/revelaction/conllu/internal/ordered"
)

// aliases maps each part of speech column name to its older CoNLL-X name
// and back.
var aliases = map[string]string{
	"upos":    "upostag",
	"upostag": "upos",
	"xpos":    "xpostag",
	"xpostag": "xpos",
}

// Alias returns the sibling name of an aliased column.
func Alias(key string) (string, bool) {
	a, ok := aliases[key]
	return a, ok
}

// Field is one named column of a Token.
type Field struct {
	Name  string
	Value field.Value
}

// Token represents a word (or a multiword range, or an empty node) of the
// sentence: its columns keyed by field name, in column order.
//
// The upos/upostag and xpos/xpostag pairs address the same column: a
// lookup of a missing name falls back to its sibling, and setting a
// missing name updates the sibling when that one is stored.
type Token struct {
	m *ordered.Map[field.Value]
}

// NewToken builds a Token from fields in the given order.
func NewToken(fields ...Field) *Token {
	t := &Token{m: ordered.New[field.Value]()}
	for _, f := range fields {
		t.m.Set(f.Name, f.Value)
	}
	return t
}

func (t *Token) resolve(key string) (string, bool) {
	if t.m.Has(key) {
		return key, true
	}
	if a, ok := aliases[key]; ok && t.m.Has(a) {
		return a, true
	}
	return key, false
}

// Get returns the value of a column.
func (t *Token) Get(key string) (field.Value, bool) {
	if t == nil || t.m == nil {
		return nil, false
	}
	k, ok := t.resolve(key)
	if !ok {
		return nil, false
	}
	return t.m.Get(k)
}

// Value is Get without the presence flag.
func (t *Token) Value(key string) field.Value {
	v, _ := t.Get(key)
	return v
}

func (t *Token) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Set stores v under key, or under its alias if only the alias is stored.
func (t *Token) Set(key string, v field.Value) {
	if t.m == nil {
		t.m = ordered.New[field.Value]()
	}
	k, _ := t.resolve(key)
	t.m.Set(k, v)
}

func (t *Token) Delete(key string) {
	if t == nil || t.m == nil {
		return
	}
	k, _ := t.resolve(key)
	t.m.Delete(k)
}

// Keys returns the stored column names in order.
func (t *Token) Keys() []string {
	if t == nil {
		return nil
	}
	return t.m.Keys()
}

func (t *Token) Len() int {
	if t == nil {
		return 0
	}
	return t.m.Len()
}

// Each iterates the columns in order until fn returns false.
func (t *Token) Each(fn func(key string, v field.Value) bool) {
	if t == nil {
		return
	}
	t.m.Each(fn)
}

// Copy returns a new Token with the same columns. Dictionary values are
// cloned, so editing feats or misc of the copy leaves t untouched.
func (t *Token) Copy() *Token {
	c := NewToken()
	t.Each(func(k string, v field.Value) bool {
		if d, ok := v.(*field.Dict); ok {
			v = d.Clone()
		}
		c.m.Set(k, v)
		return true
	})
	return c
}

// Equal compares columns and their order.
func (t *Token) Equal(o *Token) bool {
	if t == nil || o == nil {
		return t == o
	}
	return ordered.Equal(t.m, o.m, field.Equal)
}

// ID returns the id column when it holds an id.
func (t *Token) ID() (field.ID, bool) {
	id, ok := t.Value("id").(field.ID)
	return id, ok
}

// Head returns the head column when it holds an integer.
func (t *Token) Head() (int, bool) {
	h, ok := t.Value("head").(field.Int)
	return int(h), ok
}

// Str returns a string column, or "" when the column is missing, null or
// not a string.
func (t *Token) Str(key string) string {
	s, _ := t.Value(key).(field.String)
	return string(s)
}

func (t *Token) Form() string   { return t.Str("form") }
func (t *Token) Lemma() string  { return t.Str("lemma") }
func (t *Token) UPOS() string   { return t.Str("upos") }
func (t *Token) Deprel() string { return t.Str("deprel") }

// Misc returns the misc column as a dictionary, nil if absent.
func (t *Token) Misc() *field.Dict {
	d, _ := t.Value("misc").(*field.Dict)
	return d
}

// Feats returns the feats column as a dictionary, nil if absent.
func (t *Token) Feats() *field.Dict {
	d, _ := t.Value("feats").(*field.Dict)
	return d
}

// SpaceAfter reports whether the token is followed by a space in the
// original text, following the SpaceAfter=No misc attribute.
func (t *Token) SpaceAfter() bool {
	v, ok := t.Misc().Get("SpaceAfter")
	return !ok || !strings.EqualFold(string(asString(v)), "no")
}

func asString(v field.Value) field.String {
	s, _ := v.(field.String)
	return s
}
