package match

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/revelaction/conllu/field"
	sent "github.com/revelaction/conllu/sentence"
)

var ErrInvalidExpr = errors.New("invalid filter expression")

type Op string

const (
	OpEq     Op = "="
	OpNotEq  Op = "!="
	OpRegexp Op = "~"
)

// Cond is one condition: a field path, an operator and a value. Values
// are compared with the CoNLL-U text of the resolved field, so "_" stands
// for null and a missing path.
type Cond struct {
	Path  string
	Op    Op
	Value string

	re *regexp.Regexp
}

func (c Cond) String() string {
	v := c.Value
	if strings.ContainsAny(v, " \t\"") {
		v = strconv.Quote(v)
	}
	return c.Path + string(c.Op) + v
}

func (c Cond) match(v field.Value) bool {
	s, err := field.Format(v)
	if err != nil {
		return false
	}
	switch c.Op {
	case OpNotEq:
		return s != c.Value
	case OpRegexp:
		return c.re.MatchString(s)
	}
	return s == c.Value
}

// Expr is a list of conditions that a single token must all satisfy.
type Expr []Cond

// Parse reads space separated conditions:
//
//	lemma=dog feats.Number=Sing form~^[A-Z] deps!=_ misc.Gloss="the dog"
//
// A value with spaces is written as a Go quoted string.
func Parse(in string) (Expr, error) {
	var expr Expr
	for _, item := range split(in) {
		cond, err := parseCond(item)
		if err != nil {
			return nil, err
		}
		expr = append(expr, cond)
	}
	if len(expr) == 0 {
		return nil, fmt.Errorf("%w: no conditions", ErrInvalidExpr)
	}
	return expr, nil
}

// split cuts on blanks outside double quotes.
func split(in string) []string {
	var items []string
	var cur strings.Builder
	quoted, escaped := false, false

	for _, r := range in {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case (r == ' ' || r == '\t') && !quoted:
			if cur.Len() > 0 {
				items = append(items, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		items = append(items, cur.String())
	}
	return items
}

func parseCond(item string) (Cond, error) {
	i := strings.IndexAny(item, "=~!")
	if i <= 0 {
		return Cond{}, fmt.Errorf("%w: %q has no field", ErrInvalidExpr, item)
	}

	c := Cond{Path: item[:i]}
	rest := item[i:]
	switch {
	case strings.HasPrefix(rest, string(OpNotEq)):
		c.Op = OpNotEq
	case strings.HasPrefix(rest, string(OpRegexp)):
		c.Op = OpRegexp
	case strings.HasPrefix(rest, string(OpEq)):
		c.Op = OpEq
	default:
		return Cond{}, fmt.Errorf("%w: %q has no operator", ErrInvalidExpr, item)
	}

	value := rest[len(c.Op):]
	if strings.HasPrefix(value, `"`) {
		unquoted, err := strconv.Unquote(value)
		if err != nil {
			return Cond{}, fmt.Errorf("%w: %q: %v", ErrInvalidExpr, item, err)
		}
		value = unquoted
	}
	c.Value = value

	if c.Op == OpRegexp {
		re, err := regexp.Compile(value)
		if err != nil {
			return Cond{}, fmt.Errorf("%w: %q: %v", ErrInvalidExpr, item, err)
		}
		c.re = re
	}
	return c, nil
}

func (e Expr) String() string {
	parts := make([]string, len(e))
	for i, c := range e {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Query compiles the expression into a sentence.Query. Conditions on the
// same path are ANDed into one predicate.
func (e Expr) Query() sent.Query {
	byPath := map[string][]Cond{}
	for _, c := range e {
		byPath[c.Path] = append(byPath[c.Path], c)
	}

	q := sent.Query{}
	for path, conds := range byPath {
		q[path] = sent.Predicate(func(v field.Value) bool {
			for _, c := range conds {
				if !c.match(v) {
					return false
				}
			}
			return true
		})
	}
	return q
}

// Lemmas returns the distinct values of the lemma equality conditions.
// Other conditions cannot be used for indexed candidate retrieval; they
// are checked later by the Matcher.
func (e Expr) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, c := range e {
		if c.Op != OpEq || c.Path != "lemma" || c.Value == field.Null {
			continue
		}
		if !seen[c.Value] {
			seen[c.Value] = true
			lemmas = append(lemmas, c.Value)
		}
	}
	return lemmas
}

// Match returns the tokens of tl satisfying the expression.
func (e Expr) Match(tl *sent.TokenList) []*sent.Token {
	return tl.Filter(e.Query()).Tokens
}
