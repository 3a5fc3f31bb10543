package field

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrSerialization = errors.New("can't serialize value")

// Format renders v as column text, the inverse of the parse functions.
func Format(v Value) (string, error) {
	switch x := v.(type) {
	case nil:
		return Null, nil
	case String:
		return string(x), nil
	case Int:
		return strconv.Itoa(int(x)), nil
	case ID:
		return x.String(), nil
	case *Dict:
		return formatDict(x)
	case Deps:
		return formatDeps(x)
	}
	return "", fmt.Errorf("%w: unsupported type %T", ErrSerialization, v)
}

func formatDict(d *Dict) (string, error) {
	if d.Len() == 0 {
		return Null, nil
	}

	parts := make([]string, 0, d.Len())
	var err error
	d.Each(func(key string, v Value) bool {
		switch x := v.(type) {
		case nil:
			parts = append(parts, key+"="+Null)
		case String:
			if x == "" {
				parts = append(parts, key)
				break
			}
			parts = append(parts, key+"="+string(x))
		case Int, ID:
			s, _ := Format(x)
			parts = append(parts, key+"="+s)
		default:
			err = fmt.Errorf("%w: key '%s' holds %T", ErrSerialization, key, v)
			return false
		}
		return true
	})
	if err != nil {
		return "", err
	}

	return strings.Join(parts, "|"), nil
}

func formatDeps(deps Deps) (string, error) {
	if len(deps) == 0 {
		return "", fmt.Errorf("%w: empty dependency list", ErrSerialization)
	}

	parts := make([]string, len(deps))
	for i, dep := range deps {
		if dep.Rel == "" {
			return "", fmt.Errorf("%w: dependency %d has no relation", ErrSerialization, i)
		}
		parts[i] = dep.Head.String() + ":" + dep.Rel
	}
	return strings.Join(parts, "|"), nil
}

// MarshalJSON renders single word ids as numbers and composite ids as
// their column text.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsSingle() {
		return []byte(strconv.Itoa(id.Start)), nil
	}
	return json.Marshal(id.String())
}

// MarshalJSON keeps the attribute order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}

	var b strings.Builder
	b.WriteByte('{')
	var err error
	i := 0
	d.Each(func(key string, v Value) bool {
		if i > 0 {
			b.WriteByte(',')
		}
		i++

		var kb, vb []byte
		if kb, err = json.Marshal(key); err != nil {
			return false
		}
		if vb, err = json.Marshal(v); err != nil {
			return false
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
		return true
	})
	if err != nil {
		return nil, err
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
