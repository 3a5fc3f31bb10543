package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/conllu/sentence"
)

const (
	Defaultformat = "conllu"
)

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

func SupportedFormats() []string {
	return []string{"conllu", "text", "tree", "lemma", "json", "yaml"}
}

// IsSupported reports whether format is one of SupportedFormats.
func IsSupported(format string) bool {
	for _, f := range SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// Match is a sentence to render, with the tokens to highlight.
type Match struct {
	DocID    int
	DocTitle string

	// SentID is the position of the sentence in its doc.
	SentID int

	Sentence *sent.TokenList
	Matches  []*sent.Token
}

type Renderer struct {
	W io.Writer

	HasColor bool

	HasPrefix bool

	PrefixFunc func(*Match) string

	// Format determines the format of the sentence
	//
	// conllu: the CoNLL-U block, matched token lines highlighted
	// text: the surface text, rebuilt from the forms and SpaceAfter=No
	// tree: the dependency tree, one node per line
	// lemma: the lemmas of the matched tokens (all tokens without matches)
	// json, yaml: one document per sentence
	Format string

	// Tree format options
	Indent   int
	Exclude  []string
	TreeOpts []sent.TreeOption
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w, Format: Defaultformat, Indent: 4, Exclude: sent.DefaultExcludeFields}
}

// Render writes one sentence in the current Format.
func (r *Renderer) Render(m *Match) error {
	switch r.Format {
	case "conllu", "":
		return r.conllu(m)
	case "text":
		_, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(m), r.Text(m.Sentence, m.Matches))
		return err
	case "lemma":
		_, err := fmt.Fprintf(r.W, "%s%s\n", r.prefix(m), r.lemma(m))
		return err
	case "tree":
		return r.tree(m)
	case "json":
		return r.json(m)
	case "yaml":
		return r.yaml(m)
	}
	return fmt.Errorf("unsupported format %q", r.Format)
}

// Sentence renders a sentence without highlighting.
func (r *Renderer) Sentence(tl *sent.TokenList) error {
	return r.Render(&Match{Sentence: tl})
}

func (r *Renderer) conllu(m *Match) error {
	s, err := m.Sentence.Serialize()
	if err != nil {
		return err
	}

	if r.HasColor {
		for _, t := range m.Matches {
			line, err := sent.SerializeToken(t)
			if err != nil {
				return err
			}
			s = strings.Replace(s, line+"\n", Green256+line+Off+"\n", 1)
		}
	}

	if r.HasPrefix {
		s = "# " + strings.TrimSpace(r.prefix(m)) + "\n" + s
	}
	_, err = io.WriteString(r.W, s)
	return err
}

func (r *Renderer) tree(m *Match) error {
	tt, err := m.Sentence.ToTree(r.TreeOpts...)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tt.Print(&buf, sent.WithIndent(r.Indent), sent.WithExclude(r.Exclude...)); err != nil {
		return err
	}

	out := buf.String()
	if r.HasColor {
		for _, t := range m.Matches {
			id, ok := t.ID()
			if !ok {
				continue
			}
			out = colorLines(out, "["+id.String()+"]")
		}
	}
	if r.HasPrefix {
		out = r.prefix(m) + "\n" + out
	}
	_, err = io.WriteString(r.W, out+"\n")
	return err
}

func colorLines(out, suffix string) string {
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		if strings.HasSuffix(l, suffix) {
			trimmed := strings.TrimLeft(l, " ")
			indent := l[:len(l)-len(trimmed)]
			lines[i] = indent + Green256 + trimmed + Off
		}
	}
	return strings.Join(lines, "\n")
}

// Text rebuilds the surface text of a sentence. A multiword token is
// written instead of the words it spans, empty nodes are skipped, and no
// space follows a token whose misc has SpaceAfter=No.
func (r *Renderer) Text(tl *sent.TokenList, matches []*sent.Token) string {
	var str strings.Builder
	skipUntil := 0

	for _, t := range tl.Tokens {
		id, ok := t.ID()
		if !ok || id.IsDecimal() {
			continue
		}
		if id.IsSingle() && id.Start <= skipUntil {
			continue
		}

		highlight := r.isMatch(t, matches)
		if id.IsRange() {
			skipUntil = id.End
			for _, w := range tl.Tokens {
				wid, ok := w.ID()
				if ok && wid.IsSingle() && wid.Start >= id.Start && wid.Start <= id.End && r.isMatch(w, matches) {
					highlight = true
				}
			}
		}

		if highlight && r.HasColor {
			str.WriteString(Green256 + t.Form() + Off)
		} else {
			str.WriteString(t.Form())
		}
		if t.SpaceAfter() {
			str.WriteString(" ")
		}
	}

	return strings.TrimRight(str.String(), " ")
}

func (r *Renderer) isMatch(t *sent.Token, matches []*sent.Token) bool {
	for _, mt := range matches {
		if mt == t {
			return true
		}
	}
	return false
}

// lemma renders only the matched tokens (the lemma field)
func (r *Renderer) lemma(m *Match) string {
	tokens := m.Matches
	if len(tokens) == 0 {
		tokens = m.Sentence.Tokens
	}

	lemmas := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if l := t.Lemma(); l != "" {
			lemmas = append(lemmas, l)
		}
	}
	return strings.Join(lemmas, " ")
}

func (r *Renderer) prefix(m *Match) string {
	if !r.HasPrefix {
		return ""
	}

	if r.PrefixFunc != nil {
		return r.PrefixFunc(m)
	}

	// Default
	return fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(m.DocTitle), m.DocID, m.SentID)
}

func PrefixFuncIconHand(m *Match) string {
	return fmt.Sprintf("%2d ✍  ", m.SentID)
}

func (r *Renderer) title(title string) string {
	var part string
	if len([]rune(title)) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = string([]rune(title)[:20])
	}

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}
	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}
