package sentence

import (
	"reflect"

	"github.com/revelaction/conllu/internal/ordered"
)

// Pair is a metadata entry as produced by a comment parser.
type Pair struct {
	Key   string
	Value any
}

// Metadata holds the comment lines of a sentence in order. Values are
// usually strings; nil marks a comment without value (# newdoc).
type Metadata struct {
	m *ordered.Map[any]
}

// NewMetadata returns metadata holding pairs in order.
func NewMetadata(pairs ...Pair) *Metadata {
	md := &Metadata{m: ordered.New[any]()}
	for _, p := range pairs {
		md.m.Set(p.Key, p.Value)
	}
	return md
}

func (md *Metadata) Get(key string) (any, bool) {
	if md == nil {
		return nil, false
	}
	return md.m.Get(key)
}

// GetString returns a string valued entry, "" otherwise.
func (md *Metadata) GetString(key string) string {
	v, _ := md.Get(key)
	s, _ := v.(string)
	return s
}

func (md *Metadata) Has(key string) bool {
	_, ok := md.Get(key)
	return ok
}

func (md *Metadata) Set(key string, v any) {
	if md.m == nil {
		md.m = ordered.New[any]()
	}
	md.m.Set(key, v)
}

func (md *Metadata) Delete(key string) {
	if md == nil {
		return
	}
	md.m.Delete(key)
}

func (md *Metadata) Keys() []string {
	if md == nil {
		return nil
	}
	return md.m.Keys()
}

func (md *Metadata) Len() int {
	if md == nil {
		return 0
	}
	return md.m.Len()
}

func (md *Metadata) Each(fn func(key string, v any) bool) {
	if md == nil {
		return
	}
	md.m.Each(fn)
}

// Clone copies the entries into a new Metadata.
func (md *Metadata) Clone() *Metadata {
	if md == nil {
		return NewMetadata()
	}
	return &Metadata{m: md.m.Clone()}
}

// Merge sets every entry of other on md; other wins on conflicts.
func (md *Metadata) Merge(other *Metadata) {
	other.Each(func(k string, v any) bool {
		md.Set(k, v)
		return true
	})
}

func (md *Metadata) Equal(o *Metadata) bool {
	return ordered.Equal(md.mapOrNil(), o.mapOrNil(), func(a, b any) bool {
		return reflect.DeepEqual(a, b)
	})
}

func (md *Metadata) mapOrNil() *ordered.Map[any] {
	if md == nil {
		return nil
	}
	return md.m
}
