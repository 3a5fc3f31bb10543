package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/revelaction/conllu/field"
	sent "github.com/revelaction/conllu/sentence"
	"gopkg.in/yaml.v3"
)

// yaml writes the sentence as a YAML document. Nodes are built by hand so
// that metadata, token and dict keys keep their order.
func (r *Renderer) yaml(m *Match) error {
	doc := mapping()
	if r.HasPrefix {
		add(doc, "doc_id", intNode(m.DocID))
		add(doc, "doc_title", strNode(m.DocTitle))
		add(doc, "sent_id", intNode(m.SentID))
	}
	add(doc, "metadata", MetadataNode(m.Sentence.Metadata))

	tokens := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range m.Sentence.Tokens {
		tokens.Content = append(tokens.Content, TokenNode(t))
	}
	add(doc, "tokens", tokens)

	if _, err := io.WriteString(r.W, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(r.W)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// MetadataNode converts metadata to an ordered YAML mapping.
func MetadataNode(md *sent.Metadata) *yaml.Node {
	n := mapping()
	md.Each(func(k string, v any) bool {
		switch x := v.(type) {
		case nil:
			add(n, k, nullNode())
		case string:
			add(n, k, strNode(x))
		default:
			add(n, k, strNode(fmt.Sprint(x)))
		}
		return true
	})
	return n
}

// TokenNode converts a token to an ordered YAML mapping.
func TokenNode(t *sent.Token) *yaml.Node {
	n := mapping()
	t.Each(func(k string, v field.Value) bool {
		add(n, k, ValueNode(v))
		return true
	})
	return n
}

// ValueNode converts a field value: null, strings, ints, ids (ints when
// single), dicts as mappings and deps as a sequence of {rel, head}.
func ValueNode(v field.Value) *yaml.Node {
	switch x := v.(type) {
	case nil:
		return nullNode()
	case field.String:
		return strNode(string(x))
	case field.Int:
		return intNode(int(x))
	case field.ID:
		if x.IsSingle() {
			return intNode(x.Start)
		}
		return strNode(x.String())
	case *field.Dict:
		n := mapping()
		x.Each(func(k string, dv field.Value) bool {
			add(n, k, ValueNode(dv))
			return true
		})
		return n
	case field.Deps:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, d := range x {
			dep := mapping()
			add(dep, "rel", strNode(d.Rel))
			add(dep, "head", ValueNode(d.Head))
			n.Content = append(n.Content, dep)
		}
		return n
	}
	return strNode(fmt.Sprint(v))
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func add(n *yaml.Node, key string, value *yaml.Node) {
	n.Content = append(n.Content, strNode(key), value)
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(i int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(i)}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
