package field

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const Null = "_"

var (
	ErrInvalidID      = errors.New("not a valid ID")
	ErrInvalidInteger = errors.New("not a valid integer")
)

const (
	idSinglePattern  = `0|[1-9][0-9]*`
	idRangePattern   = `[1-9][0-9]*-[1-9][0-9]*`
	idDecimalPattern = `[0-9]+\.[1-9][0-9]*`

	anyIDPattern = `(?:` + idSinglePattern + `|` + idRangePattern + `|` + idDecimalPattern + `)`
	depPattern   = anyIDPattern + `(?::[^\d:_\-|][^:|]*)+`
)

var (
	idSingleRe  = regexp.MustCompile(`^(?:` + idSinglePattern + `)$`)
	idRangeRe   = regexp.MustCompile(`^` + idRangePattern + `$`)
	idDecimalRe = regexp.MustCompile(`^` + idDecimalPattern + `$`)
	integerRe   = regexp.MustCompile(`^(?:0|-?[1-9][0-9]*)$`)
	depsRe      = regexp.MustCompile(`^` + depPattern + `(?:\|` + depPattern + `)*$`)
)

// ParseNullable maps "" and "_" to nil and anything else to a String.
func ParseNullable(value string) Value {
	if value == "" || value == Null {
		return nil
	}
	return String(value)
}

// ParseInt parses an optionally signed integer; "_" is nil.
func ParseInt(value string) (Value, error) {
	if value == Null {
		return nil, nil
	}
	if !integerRe.MatchString(value) {
		return nil, fmt.Errorf("'%s' is %w", value, ErrInvalidInteger)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("'%s' is %w: %v", value, ErrInvalidInteger, err)
	}
	return Int(n), nil
}

// ParseID parses a word id (4), a multiword range (1-2, end greater than
// start) or an empty node id (1.1). "" and "_" are nil. The single word id
// 0 is accepted.
func ParseID(value string) (Value, error) {
	if value == "" || value == Null {
		return nil, nil
	}
	id, err := parseID(value)
	if err != nil {
		return nil, err
	}
	return id, nil
}

// ParseIDStrict is ParseID without the single word id 0, which only
// appears as a head sentinel in well formed treebanks.
func ParseIDStrict(value string) (Value, error) {
	v, err := ParseID(value)
	if err != nil {
		return nil, err
	}
	if id, ok := v.(ID); ok && id.IsSingle() && id.Start == 0 {
		return nil, fmt.Errorf("'%s' is %w", value, ErrInvalidID)
	}
	return v, nil
}

func parseID(value string) (ID, error) {
	switch {
	case idSingleRe.MatchString(value):
		n, err := strconv.Atoi(value)
		if err == nil {
			return NewID(n), nil
		}

	case idRangeRe.MatchString(value):
		from, to, _ := strings.Cut(value, RangeSep)
		f, ferr := strconv.Atoi(from)
		t, terr := strconv.Atoi(to)
		if ferr == nil && terr == nil && t > f {
			return NewRange(f, t), nil
		}

	case idDecimalRe.MatchString(value):
		word, sub, _ := strings.Cut(value, DecimalSep)
		w, werr := strconv.Atoi(word)
		s, serr := strconv.Atoi(sub)
		if werr == nil && serr == nil {
			return NewDecimal(w, s), nil
		}
	}

	return ID{}, fmt.Errorf("'%s' is %w", value, ErrInvalidID)
}

// ParseDict parses a "|" separated list of key=value attributes. A segment
// without "=" is stored with the empty String. Segments whose key is empty
// or "_" are dropped. Later duplicates overwrite earlier values in place.
func ParseDict(value string) Value {
	if ParseNullable(value) == nil {
		return nil
	}

	d := NewDict()
	for _, part := range strings.Split(value, "|") {
		key, val, hasValue := strings.Cut(part, "=")
		if ParseNullable(key) == nil {
			continue
		}
		if !hasValue {
			d.Set(key, String(""))
			continue
		}
		d.Set(key, ParseNullable(val))
	}
	return d
}

// ParsePairedList parses an enhanced dependency list such as
// "4:nsubj|2:obj:pass". Values that do not match the grammar fall back to
// ParseNullable, so the result is Deps, String or nil.
func ParsePairedList(value string) (Value, error) {
	if !depsRe.MatchString(value) {
		return ParseNullable(value), nil
	}

	parts := strings.Split(value, "|")
	deps := make(Deps, 0, len(parts))
	for _, part := range parts {
		head, rel, _ := strings.Cut(part, ":")
		id, err := parseID(head)
		if err != nil {
			return nil, err
		}
		deps = append(deps, Dep{Rel: rel, Head: id})
	}
	return deps, nil
}
