package sentence

import (
	"strings"
)

// Doc is a titled, labelled sequence of parsed sentences.
type Doc struct {
	Id int

	Title string

	Labels []string

	// Fields are the columns the sentences were parsed with. Empty means
	// the default CoNLL-U columns.
	Fields []string

	Sentences []*TokenList
}

// Library is a collection of Doc
type Library []Doc

// TokenList is a sentence: its tokens in order plus the metadata comments
// that preceded them.
type TokenList struct {
	Tokens []*Token

	Metadata *Metadata

	// DefaultFields, when set, are backfilled with null on every token
	// added through Append, Insert, Set or Extend, and give the column order
	// of those tokens.
	DefaultFields []string
}

// NewTokenList wraps tokens and metadata. A nil metadata becomes empty.
func NewTokenList(tokens []*Token, md *Metadata) *TokenList {
	if md == nil {
		md = NewMetadata()
	}
	return &TokenList{Tokens: tokens, Metadata: md}
}

func (tl *TokenList) Len() int {
	return len(tl.Tokens)
}

// At returns the token at index i. Negative indexes count from the end.
func (tl *TokenList) At(i int) *Token {
	if i < 0 {
		i += len(tl.Tokens)
	}
	return tl.Tokens[i]
}

// Slice returns tokens [i, j) as a new TokenList carrying a copy of the
// metadata.
func (tl *TokenList) Slice(i, j int) *TokenList {
	tokens := make([]*Token, j-i)
	copy(tokens, tl.Tokens[i:j])
	return &TokenList{
		Tokens:        tokens,
		Metadata:      tl.Metadata.Clone(),
		DefaultFields: tl.DefaultFields,
	}
}

// fill returns t with every default field present, in default field order
// followed by the remaining columns of t.
func (tl *TokenList) fill(t *Token) *Token {
	if t == nil {
		t = NewToken()
	}
	if len(tl.DefaultFields) == 0 {
		return t
	}

	filled := NewToken()
	seen := map[string]bool{}
	for _, name := range tl.DefaultFields {
		key, _ := t.resolve(name)
		v, _ := t.m.Get(key)
		filled.m.Set(key, v)
		seen[key] = true
	}
	for _, k := range t.Keys() {
		if !seen[k] {
			v, _ := t.m.Get(k)
			filled.m.Set(k, v)
		}
	}
	return filled
}

// Append adds tokens at the end.
func (tl *TokenList) Append(tokens ...*Token) {
	for _, t := range tokens {
		tl.Tokens = append(tl.Tokens, tl.fill(t))
	}
}

// Insert adds t before index i.
func (tl *TokenList) Insert(i int, t *Token) {
	tl.Tokens = append(tl.Tokens, nil)
	copy(tl.Tokens[i+1:], tl.Tokens[i:])
	tl.Tokens[i] = tl.fill(t)
}

// Set replaces the token at index i.
func (tl *TokenList) Set(i int, t *Token) {
	tl.Tokens[i] = tl.fill(t)
}

// Remove deletes the token at index i.
func (tl *TokenList) Remove(i int) {
	tl.Tokens = append(tl.Tokens[:i], tl.Tokens[i+1:]...)
}

// Clear drops all tokens and the metadata.
func (tl *TokenList) Clear() {
	tl.Tokens = nil
	tl.Metadata = NewMetadata()
}

// Copy returns a new TokenList sharing the tokens and holding a copy of
// the metadata.
func (tl *TokenList) Copy() *TokenList {
	return tl.Slice(0, len(tl.Tokens))
}

// Extend appends the tokens of other and merges its metadata, other
// winning on key conflicts.
func (tl *TokenList) Extend(other *TokenList) {
	tl.Append(other.Tokens...)
	if tl.Metadata == nil {
		tl.Metadata = NewMetadata()
	}
	tl.Metadata.Merge(other.Metadata)
}

// Concat returns a new TokenList with the tokens of tl followed by those
// of other; tl is left untouched.
func (tl *TokenList) Concat(other *TokenList) *TokenList {
	c := tl.Copy()
	c.Extend(other)
	return c
}

// Equal compares tokens one by one. Metadata is compared too unless other
// has none.
func (tl *TokenList) Equal(other *TokenList) bool {
	if tl == nil || other == nil {
		return tl == other
	}
	if len(tl.Tokens) != len(other.Tokens) {
		return false
	}
	for i := range tl.Tokens {
		if !tl.Tokens[i].Equal(other.Tokens[i]) {
			return false
		}
	}
	if other.Metadata == nil {
		return true
	}
	return tl.Metadata.Equal(other.Metadata)
}

func (tl *TokenList) String() string {
	forms := make([]string, len(tl.Tokens))
	for i, t := range tl.Tokens {
		forms[i] = t.Form()
	}
	return "TokenList<" + strings.Join(forms, ", ") + ">"
}
