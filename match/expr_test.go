package match

import (
	"errors"
	"testing"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "# text = The quick brown fox\n" +
	"1\tThe\tthe\tDET\tDT\tDefinite=Def|PronType=Art\t4\tdet\t_\t_\n" +
	"2\tquick\tquick\tADJ\tJJ\tDegree=Pos\t4\tamod\t_\t_\n" +
	"3\tbrown\tbrown\tADJ\tJJ\tDegree=Pos\t4\tamod\t_\t_\n" +
	"4\tfox\tfox\tNOUN\tNN\tNumber=Sing\t0\troot\t_\tSpaceAfter=No\n" +
	"\n"

func sampleSentence(t *testing.T) *sent.TokenList {
	t.Helper()
	tl, err := parser.ParseSentence(sample, parser.Config{})
	require.NoError(t, err)
	return tl
}

func forms(tokens []*sent.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Form())
	}
	return out
}

func TestParse(t *testing.T) {
	expr, err := Parse(`lemma=fox  feats.Number!=Plur form~^f misc.Gloss="a b"`)
	require.NoError(t, err)
	require.Len(t, expr, 4)

	assert.Equal(t, Cond{Path: "lemma", Op: OpEq, Value: "fox"}, expr[0])
	assert.Equal(t, OpNotEq, expr[1].Op)
	assert.Equal(t, "feats.Number", expr[1].Path)
	assert.Equal(t, OpRegexp, expr[2].Op)
	assert.Equal(t, "^f", expr[2].Value)
	assert.Equal(t, "a b", expr[3].Value)

	assert.Equal(t, `lemma=fox feats.Number!=Plur form~^f misc.Gloss="a b"`, expr.String())
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"=fox",
		"lemma",
		`form="unterminated`,
		"form~[",
	} {
		_, err := Parse(in)
		assert.True(t, errors.Is(err, ErrInvalidExpr), "input %q: %v", in, err)
	}
}

func TestExprMatch(t *testing.T) {
	tl := sampleSentence(t)

	tests := []struct {
		expr string
		want []string
	}{
		{"upos=ADJ", []string{"quick", "brown"}},
		{"upostag=ADJ", []string{"quick", "brown"}},
		{"upos=ADJ form~^b", []string{"brown"}},
		{"feats.Degree=Pos", []string{"quick", "brown"}},
		{"feats.Number=_", []string{"The", "quick", "brown"}},
		{"misc=_", []string{"The", "quick", "brown"}},
		{"misc.SpaceAfter=No", []string{"fox"}},
		{"head=4", []string{"The", "quick", "brown"}},
		{"id=1", []string{"The"}},
		{"deprel!=amod deprel!=det", []string{"fox"}},
		{"form~^[a-z]+$ form~n$", []string{"brown"}},
		{"lemma=cat", nil},
	}

	for _, tt := range tests {
		expr, err := Parse(tt.expr)
		require.NoError(t, err, tt.expr)

		got := expr.Match(tl)
		if tt.want == nil {
			assert.Empty(t, got, tt.expr)
			continue
		}
		assert.Equal(t, tt.want, forms(got), tt.expr)
	}
}

func TestExprLemmas(t *testing.T) {
	expr, err := Parse("lemma=fox upos=NOUN lemma=fox lemma!=dog lemma=_ lemma=the")
	require.NoError(t, err)
	assert.Equal(t, []string{"fox", "the"}, expr.Lemmas())

	expr, err = Parse("upos=NOUN")
	require.NoError(t, err)
	assert.Empty(t, expr.Lemmas())
}
