package sentence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/revelaction/conllu/field"
)

// Serialize renders the sentence as CoNLL-U: comment lines, then one tab
// separated line per token in the token's own column order, then a blank
// line. A sentence without tokens and metadata is "\n\n".
func (tl *TokenList) Serialize() (string, error) {
	var b strings.Builder

	tl.Metadata.Each(func(key string, v any) bool {
		b.WriteString("# ")
		b.WriteString(key)
		if s := metadataText(v); s != "" {
			b.WriteString(" = ")
			b.WriteString(s)
		}
		b.WriteByte('\n')
		return true
	})

	for i, t := range tl.Tokens {
		line, err := SerializeToken(t)
		if err != nil {
			return "", fmt.Errorf("token %d: %w", i+1, err)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if b.Len() == 0 {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// SerializeToken renders one token line without the line break.
func SerializeToken(t *Token) (string, error) {
	cols := make([]string, 0, t.Len())
	var err error
	t.Each(func(key string, v field.Value) bool {
		var s string
		if s, err = field.Format(v); err != nil {
			err = fmt.Errorf("field '%s': %w", key, err)
			return false
		}
		cols = append(cols, s)
		return true
	})
	if err != nil {
		return "", err
	}
	return strings.Join(cols, "\t"), nil
}

func metadataText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// MarshalJSON renders the columns as an object in column order.
func (t *Token) MarshalJSON() ([]byte, error) {
	var entries []jsonEntry
	t.Each(func(k string, v field.Value) bool {
		entries = append(entries, jsonEntry{k, v})
		return true
	})
	return marshalObject(entries)
}

// MarshalJSON renders the comments as an object in comment order.
func (md *Metadata) MarshalJSON() ([]byte, error) {
	var entries []jsonEntry
	md.Each(func(k string, v any) bool {
		entries = append(entries, jsonEntry{k, v})
		return true
	})
	return marshalObject(entries)
}

// MarshalJSON renders {"metadata": {...}, "tokens": [...]}.
func (tl *TokenList) MarshalJSON() ([]byte, error) {
	tokens := tl.Tokens
	if tokens == nil {
		tokens = []*Token{}
	}
	return json.Marshal(struct {
		Metadata *Metadata `json:"metadata"`
		Tokens   []*Token  `json:"tokens"`
	}{tl.Metadata, tokens})
}

type jsonEntry struct {
	key   string
	value any
}

func marshalObject(entries []jsonEntry) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
