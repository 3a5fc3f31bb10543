package query

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/conllu/parser"
	"github.com/revelaction/conllu/render"
	"github.com/revelaction/conllu/storage/filesystem"
)

func TestParse(t *testing.T) {
	labels, expr, err := Parse("  /news /es lemma=hacer upos=VERB")
	require.NoError(t, err)
	assert.Equal(t, []string{"news", "es"}, labels)
	assert.Equal(t, "lemma=hacer upos=VERB", expr.String())

	labels, expr, err = Parse("form=Hace")
	require.NoError(t, err)
	assert.Empty(t, labels)
	assert.Len(t, expr, 1)

	_, _, err = Parse("/news")
	assert.Error(t, err)

	_, _, err = Parse("/ lemma=hacer")
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	labels := []string{"news", "weather"}

	got := Complete(labels, "/ne")
	require.Len(t, got, 1)
	assert.Equal(t, "/news", got[0].Text)

	got = Complete(labels, "/")
	assert.Len(t, got, 2)

	got = Complete(labels, "le")
	require.Len(t, got, 1)
	assert.Equal(t, "lemma=", got[0].Text)

	assert.Empty(t, Complete(labels, ""))
	assert.Empty(t, Complete(labels, "lemma=ha"))
}

func TestHandlerQuery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.conllu"), []byte(
		"# labels = weather\n"+
			"1\tHace\thacer\tVERB\t_\t_\t0\troot\t_\t_\n"+
			"2\tfrío\tfrío\tNOUN\t_\t_\t1\tobj\t_\tSpaceAfter=No\n"+
			"3\t.\t.\tPUNCT\t_\t_\t1\tpunct\t_\t_\n"+
			"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.conllu"), []byte(
		"# labels = news\n"+
			"1\tHace\thacer\tVERB\t_\t_\t0\troot\t_\t_\n"+
			"2\tcalor\tcalor\tNOUN\t_\t_\t1\tobj\t_\t_\n"+
			"\n"), 0644))

	store, err := filesystem.NewDocStore(dir, parser.Config{})
	require.NoError(t, err)

	var out bytes.Buffer
	r := render.NewRenderer(&out)
	r.Format = "text"
	h := NewHandler(store, r, zerolog.Nop())

	require.NoError(t, h.Query("lemma=hacer"))
	assert.Equal(t, "Hace frío.\nHace calor\n", out.String())

	out.Reset()
	require.NoError(t, h.Query("/news lemma=hacer"))
	assert.Equal(t, "Hace calor\n", out.String())

	out.Reset()
	require.NoError(t, h.Query("upos=PUNCT"))
	assert.Equal(t, "Hace frío.\n", out.String())

	assert.Error(t, h.Query("lemma"))
}
