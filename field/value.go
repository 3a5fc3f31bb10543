// Package field implements the grammar of single CoNLL-U column values.
//
// Every parsed column is a Value. A nil Value stands for the null marker
// "_". The concrete types are String, Int, ID, *Dict and Deps; callers are
// expected to switch on them:
//
//	switch v := tok.Get("deps").(type) {
//	case field.Deps:
//		// structured enhanced dependencies
//	case field.String:
//		// value did not match the paired list grammar
//	case nil:
//		// "_"
//	}
package field

import (
	"strconv"

	"github.com/revelaction/conllu/internal/ordered"
)

// Value is a parsed column value. The set of implementations is closed.
type Value interface {
	value()
}

// String is a raw column value.
type String string

// Int is an integer column value, as used by the head column.
type Int int

const (
	RangeSep   = "-"
	DecimalSep = "."
)

// ID is a token id. Sep is empty for a single word id, RangeSep for a
// multiword token range (1-2) and DecimalSep for an empty node (1.1).
type ID struct {
	Start int
	Sep   string
	End   int
}

// Dep is one entry of an enhanced dependency list.
type Dep struct {
	Rel  string `json:"rel"`
	Head ID     `json:"head"`
}

// Deps is an ordered enhanced dependency list (the deps column).
type Deps []Dep

func (String) value() {}
func (Int) value()    {}
func (ID) value()     {}
func (*Dict) value()  {}
func (Deps) value()   {}

// NewID returns a single word id.
func NewID(n int) ID {
	return ID{Start: n}
}

// NewRange returns a multiword token id.
func NewRange(from, to int) ID {
	return ID{Start: from, Sep: RangeSep, End: to}
}

// NewDecimal returns an empty node id.
func NewDecimal(word, sub int) ID {
	return ID{Start: word, Sep: DecimalSep, End: sub}
}

func (id ID) IsSingle() bool  { return id.Sep == "" }
func (id ID) IsRange() bool   { return id.Sep == RangeSep }
func (id ID) IsDecimal() bool { return id.Sep == DecimalSep }

func (id ID) String() string {
	if id.IsSingle() {
		return strconv.Itoa(id.Start)
	}
	return strconv.Itoa(id.Start) + id.Sep + strconv.Itoa(id.End)
}

// Less orders ids by their leading integer only.
func (id ID) Less(other ID) bool {
	return id.Start < other.Start
}

// Dict is an ordered attribute dictionary (feats, misc). A bare key is
// stored with the empty String; an explicit "_" value is stored as nil.
type Dict struct {
	m *ordered.Map[Value]
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{m: ordered.New[Value]()}
}

func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	return d.m.Get(key)
}

func (d *Dict) Set(key string, v Value) {
	if d.m == nil {
		d.m = ordered.New[Value]()
	}
	d.m.Set(key, v)
}

func (d *Dict) Delete(key string) {
	if d == nil {
		return
	}
	d.m.Delete(key)
}

func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return d.m.Keys()
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.m.Len()
}

// Each iterates the entries in order until fn returns false.
func (d *Dict) Each(fn func(key string, v Value) bool) {
	if d == nil {
		return
	}
	d.m.Each(fn)
}

// Clone copies the dictionary. Nested values are shared.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	return &Dict{m: d.m.Clone()}
}

// Equal reports whether two values are the same, comparing dictionaries
// and dependency lists element by element.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Dict:
		y, ok := b.(*Dict)
		if !ok {
			return false
		}
		if x == nil || y == nil {
			return x == y
		}
		return ordered.Equal(x.m, y.m, Equal)
	case Deps:
		y, ok := b.(Deps)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
