package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
)

const sample = "# text = Vámonos al mar.\n" +
	"1-2\tVámonos\t_\t_\t_\t_\t_\t_\t_\t_\n" +
	"1\tVamos\tir\tVERB\t_\t_\t0\troot\t_\t_\n" +
	"2\tnos\tnosotros\tPRON\t_\t_\t1\tobj\t_\t_\n" +
	"3-4\tal\t_\t_\t_\t_\t_\t_\t_\t_\n" +
	"3\ta\ta\tADP\t_\t_\t5\tcase\t_\t_\n" +
	"4\tel\tel\tDET\t_\t_\t5\tdet\t_\t_\n" +
	"5\tmar\tmar\tNOUN\t_\t_\t1\tobl\t_\tSpaceAfter=No\n" +
	"5.1\tva\tir\tVERB\t_\t_\t_\t_\t1:conj\t_\n" +
	"6\t.\t.\tPUNCT\t_\t_\t1\tpunct\t_\t_\n" +
	"\n"

func parseSample(t *testing.T) *sent.TokenList {
	t.Helper()
	tl, err := parser.ParseSentence(sample, parser.Config{})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return tl
}

func TestText(t *testing.T) {
	tl := parseSample(t)
	r := NewRenderer(nil)

	got := r.Text(tl, nil)
	if got != "Vámonos al mar." {
		t.Fatalf("expected surface text, got %q", got)
	}
}

func TestTextHighlight(t *testing.T) {
	tl := parseSample(t)
	r := NewRenderer(nil)
	r.HasColor = true

	// the determiner is inside the "al" multiword token
	got := r.Text(tl, []*sent.Token{tl.At(5)})
	want := "Vámonos " + Green256 + "al" + Off + " mar."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderConllu(t *testing.T) {
	tl := parseSample(t)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	if err := r.Sentence(tl); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != sample {
		t.Fatalf("expected the input back, got %q", buf.String())
	}
}

func TestRenderConlluHighlight(t *testing.T) {
	tl := parseSample(t)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.HasColor = true
	if err := r.Render(&Match{Sentence: tl, Matches: []*sent.Token{tl.At(6)}}); err != nil {
		t.Fatalf("render: %v", err)
	}

	line := Green256 + "5\tmar\tmar\tNOUN\t_\t_\t1\tobl\t_\tSpaceAfter=No" + Off + "\n"
	if !strings.Contains(buf.String(), line) {
		t.Fatalf("expected highlighted line in %q", buf.String())
	}
}

func TestRenderTree(t *testing.T) {
	tl := parseSample(t)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Format = "tree"
	r.Indent = 2
	r.Exclude = []string{"id", "deprel", "lemma", "upos", "xpos", "feats", "head", "deps", "misc"}
	if err := r.Sentence(tl); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "(deprel:root) form:Vamos [1]\n" +
		"  (deprel:obj) form:nos [2]\n" +
		"  (deprel:obl) form:mar [5]\n" +
		"    (deprel:case) form:a [3]\n" +
		"    (deprel:det) form:el [4]\n" +
		"  (deprel:punct) form:. [6]\n" +
		"\n"
	if buf.String() != want {
		t.Fatalf("expected\n%s\ngot\n%s", want, buf.String())
	}
}

func TestRenderLemma(t *testing.T) {
	tl := parseSample(t)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Format = "lemma"
	if err := r.Render(&Match{Sentence: tl, Matches: []*sent.Token{tl.At(1), tl.At(6)}}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "ir mar\n" {
		t.Fatalf("expected matched lemmas, got %q", buf.String())
	}
}

func TestRenderPrefix(t *testing.T) {
	tl := parseSample(t)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Format = "text"
	r.HasPrefix = true
	r.PrefixFunc = PrefixFuncIconHand
	if err := r.Render(&Match{SentID: 3, Sentence: tl}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != " 3 ✍  Vámonos al mar.\n" {
		t.Fatalf("unexpected prefix: %q", buf.String())
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})
	r.Format = "xml"
	if err := r.Sentence(parseSample(t)); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNextFormat(t *testing.T) {
	r := NewRenderer(nil)
	supported := SupportedFormats()
	for i := range supported {
		if r.Format != supported[i] {
			t.Fatalf("expected %s, got %s", supported[i], r.Format)
		}
		r.NextFormat()
	}
	if r.Format != supported[0] {
		t.Fatalf("expected wrap around to %s, got %s", supported[0], r.Format)
	}
}
