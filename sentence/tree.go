package sentence

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/revelaction/conllu/field"
)

var (
	ErrMissingHeadField     = errors.New("can't parse tree, missing 'head' field")
	ErrNoRootFound          = errors.New("found no head node, can't build tree")
	ErrMultipleRootsFound   = errors.New("can't parse tree, found multiple root nodes")
	ErrMissingIDField       = errors.New("could not serialize tree, missing 'id' field")
	ErrMissingRequiredField = errors.New("can't print, token is missing either the id or deprel fields")
)

// DefaultExcludeFields are left out of the printed node description.
var DefaultExcludeFields = []string{"id", "deprel", "xpos", "feats", "head", "deps", "misc"}

// TokenTree is a dependency tree node. Only the root carries Metadata.
type TokenTree struct {
	Token    *Token
	Children []*TokenTree
	Metadata *Metadata

	// synthetic marks a root added to join several sentence roots.
	synthetic bool
}

type treeConfig struct {
	syntheticRoot bool
}

// TreeOption configures ToTree.
type TreeOption func(*treeConfig)

// WithSyntheticRoot makes ToTree join several head 0 tokens under a new
// root token (id 0, form "_", deprel "root", head -1) instead of failing
// with ErrMultipleRootsFound.
func WithSyntheticRoot() TreeOption {
	return func(c *treeConfig) {
		c.syntheticRoot = true
	}
}

// HeadToToken groups the tokens of a sentence by their head. Multiword
// ranges, empty nodes and tokens with a negative head are left out.
func HeadToToken(tl *TokenList) (map[int][]*Token, error) {
	if tl == nil || len(tl.Tokens) == 0 {
		return nil, fmt.Errorf("%w: need a non-empty token list", ErrMissingHeadField)
	}
	if !tl.Tokens[0].Has("head") {
		return nil, ErrMissingHeadField
	}

	heads := map[int][]*Token{}
	for i, t := range tl.Tokens {
		if t.Has("id") {
			if id, ok := t.ID(); !ok || !id.IsSingle() {
				continue
			}
		}

		head, ok := t.Head()
		if !ok {
			return nil, fmt.Errorf("%w: token %d has no integer head", ErrMissingHeadField, i+1)
		}
		if head < 0 {
			continue
		}
		heads[head] = append(heads[head], t)
	}

	return heads, nil
}

// ToTree builds the dependency tree of the sentence.
func (tl *TokenList) ToTree(opts ...TreeOption) (*TokenTree, error) {
	var cfg treeConfig
	for _, o := range opts {
		o(&cfg)
	}

	heads, err := HeadToToken(tl)
	if err != nil {
		return nil, err
	}

	roots := heads[0]
	if len(roots) == 0 {
		return nil, ErrNoRootFound
	}

	visited := map[*Token]bool{}
	var root *TokenTree
	switch {
	case len(roots) == 1:
		root = buildTree(roots[0], heads, visited)

	case cfg.syntheticRoot:
		root = &TokenTree{
			Token: NewToken(
				Field{"id", field.NewID(0)},
				Field{"form", field.String("_")},
				Field{"deprel", field.String("root")},
				Field{"head", field.Int(-1)},
			),
			synthetic: true,
		}
		for _, r := range roots {
			if visited[r] {
				continue
			}
			root.Children = append(root.Children, buildTree(r, heads, visited))
		}

	default:
		return nil, ErrMultipleRootsFound
	}

	root.Metadata = tl.Metadata
	return root, nil
}

func buildTree(t *Token, heads map[int][]*Token, visited map[*Token]bool) *TokenTree {
	visited[t] = true
	node := &TokenTree{Token: t}

	id, ok := t.ID()
	if !ok {
		return node
	}
	for _, child := range heads[id.Start] {
		if visited[child] {
			continue
		}
		node.Children = append(node.Children, buildTree(child, heads, visited))
	}
	return node
}

// SetMetadata attaches metadata to the node.
func (tt *TokenTree) SetMetadata(md *Metadata) {
	tt.Metadata = md
}

// ToList flattens the tree back into a TokenList ordered by id. A
// synthetic root is not part of the result.
func (tt *TokenTree) ToList() (*TokenList, error) {
	if tt == nil || tt.Token == nil || !tt.Token.Has("id") {
		return nil, ErrMissingIDField
	}

	tokens := flatten(tt, nil)
	sort.SliceStable(tokens, func(i, j int) bool {
		return sortKey(tokens[i]) < sortKey(tokens[j])
	})

	return NewTokenList(tokens, tt.Metadata.Clone()), nil
}

func flatten(node *TokenTree, acc []*Token) []*Token {
	if !node.synthetic {
		acc = append(acc, node.Token)
	}
	for _, child := range node.Children {
		acc = flatten(child, acc)
	}
	return acc
}

func sortKey(t *Token) int {
	id, _ := t.ID()
	return id.Start
}

// Serialize renders the tree as CoNLL-U text.
func (tt *TokenTree) Serialize() (string, error) {
	tl, err := tt.ToList()
	if err != nil {
		return "", err
	}
	return tl.Serialize()
}

type printConfig struct {
	indent  int
	exclude []string
}

// PrintOption configures Print.
type PrintOption func(*printConfig)

// WithIndent sets the number of spaces per depth level (default 4).
func WithIndent(n int) PrintOption {
	return func(c *printConfig) {
		c.indent = n
	}
}

// WithExclude replaces DefaultExcludeFields.
func WithExclude(fields ...string) PrintOption {
	return func(c *printConfig) {
		c.exclude = fields
	}
}

// Print writes the tree depth first, one node per line:
//
//	(deprel:root) form:jumps lemma:jump upos:VERB [5]
//	    (deprel:nsubj) form:fox lemma:fox upos:NOUN [4]
func (tt *TokenTree) Print(w io.Writer, opts ...PrintOption) error {
	cfg := printConfig{indent: 4, exclude: DefaultExcludeFields}
	for _, o := range opts {
		o(&cfg)
	}

	excluded := map[string]bool{}
	for _, f := range cfg.exclude {
		excluded[f] = true
		if a, ok := Alias(f); ok {
			excluded[a] = true
		}
	}
	return tt.print(w, 0, cfg.indent, excluded)
}

func (tt *TokenTree) print(w io.Writer, depth, indent int, excluded map[string]bool) error {
	if tt.Token == nil {
		return fmt.Errorf("%w: token is nil", ErrMissingRequiredField)
	}
	deprel, hasDeprel := tt.Token.Get("deprel")
	id, hasID := tt.Token.Get("id")
	if !hasDeprel || !hasID {
		return ErrMissingRequiredField
	}

	var parts []string
	var err error
	tt.Token.Each(func(k string, v field.Value) bool {
		if excluded[k] {
			return true
		}
		var s string
		if s, err = field.Format(v); err != nil {
			return false
		}
		parts = append(parts, k+":"+s)
		return true
	})
	if err != nil {
		return err
	}

	d, _ := field.Format(deprel)
	i, _ := field.Format(id)
	if _, err := fmt.Fprintf(w, "%s(deprel:%s) %s [%s]\n", strings.Repeat(" ", indent*depth), d, strings.Join(parts, " "), i); err != nil {
		return err
	}

	for _, child := range tt.Children {
		if err := child.print(w, depth+1, indent, excluded); err != nil {
			return err
		}
	}
	return nil
}

// Equal compares tokens, children and metadata recursively.
func (tt *TokenTree) Equal(o *TokenTree) bool {
	if tt == nil || o == nil {
		return tt == o
	}
	if !tt.Token.Equal(o.Token) || len(tt.Children) != len(o.Children) {
		return false
	}
	if (tt.Metadata == nil) != (o.Metadata == nil) || !tt.Metadata.Equal(o.Metadata) {
		return false
	}
	for i := range tt.Children {
		if !tt.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (tt *TokenTree) String() string {
	children := "None"
	if len(tt.Children) > 0 {
		children = "[...]"
	}
	id, _ := field.Format(tt.Token.Value("id"))
	return "TokenTree<token={id=" + id + ", form=" + tt.Token.Form() + "}, children=" + children + ">"
}
