package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
	"github.com/revelaction/conllu/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rainDoc = "# labels = weather,es\n" +
		"1\tLlueve\tllover\tVERB\t_\t_\t0\troot\t_\t_\n" +
		"\n" +
		"1\tHace\thacer\tVERB\t_\t_\t0\troot\t_\t_\n" +
		"2\tfrío\tfrío\tNOUN\t_\t_\t1\tobj\t_\t_\n" +
		"\n"

	newsDoc = "# labels = news\n" +
		"1\tHace\thacer\tVERB\t_\t_\t0\troot\t_\t_\n" +
		"2\tcalor\tcalor\tNOUN\t_\t_\t1\tobj\t_\t_\n" +
		"\n"
)

func newStore(t *testing.T) (*DocStore, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_rain.conllu"), []byte(rainDoc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_news.conllu"), []byte(newsDoc), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	store, err := NewDocStore(dir, parser.Config{})
	require.NoError(t, err)
	return store, dir
}

func TestDocStoreList(t *testing.T) {
	store, _ := newStore(t)

	docs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a_rain.conllu", docs[0].Title)
	assert.Equal(t, 0, docs[0].Id)
	assert.Equal(t, []string{"weather", "es"}, docs[0].Labels)
	assert.Nil(t, docs[0].Sentences)

	docs, err = store.List("new")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b_news.conllu", docs[0].Title)
}

func TestDocStoreListColumns(t *testing.T) {
	dir := t.TempDir()
	data := "# global.columns = ID FORM PARSEME:MWE\n# labels = mwe\n1\tHace\t1:LVC\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mwe.conllu"), []byte(data), 0644))

	store, err := NewDocStore(dir, parser.Config{})
	require.NoError(t, err)

	docs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"id", "form", "parseme:mwe"}, docs[0].Fields)
	assert.Equal(t, []string{"mwe"}, docs[0].Labels)
	assert.False(t, store.loaded[0], "the header is read without loading the doc")

	doc, err := store.Read(0)
	require.NoError(t, err)
	assert.Equal(t, "1:LVC", doc.Sentences[0].At(0).Str("parseme:mwe"))
}

func TestDocStoreRead(t *testing.T) {
	store, _ := newStore(t)

	doc, err := store.Read(0)
	require.NoError(t, err)
	assert.Len(t, doc.Sentences, 2)

	_, err = store.Read(5)
	assert.ErrorIs(t, err, storage.ErrDocNotFound)
}

func TestDocStoreLabels(t *testing.T) {
	store, _ := newStore(t)

	labels, err := store.Labels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"es", "news", "weather"}, labels)

	labels, err = store.Labels("e")
	require.NoError(t, err)
	assert.Equal(t, []string{"es", "news", "weather"}, labels)

	labels, err = store.Labels("w")
	require.NoError(t, err)
	assert.Equal(t, []string{"news", "weather"}, labels)
}

func TestDocStoreFindCandidates(t *testing.T) {
	store, _ := newStore(t)

	var got []string
	collect := func(c storage.Candidate) error {
		got = append(got, c.DocTitle+":"+c.Sentence.At(1).Form())
		return nil
	}

	cursor, err := store.FindCandidates([]string{"hacer"}, nil, 0, 0, collect)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_rain.conllu:frío", "b_news.conllu:calor"}, got)
	assert.Equal(t, storage.Cursor(1<<32|1), cursor)

	got = nil
	_, err = store.FindCandidates([]string{"hacer"}, []string{"news"}, 0, 0, collect)
	require.NoError(t, err)
	assert.Equal(t, []string{"b_news.conllu:calor"}, got)
}

func TestDocStoreFindCandidatesPaginates(t *testing.T) {
	store, _ := newStore(t)

	var rows []int64
	collect := func(c storage.Candidate) error {
		rows = append(rows, c.RowID)
		return nil
	}

	cursor, err := store.FindCandidates(nil, nil, 0, 2, collect)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, rows)
	assert.Equal(t, storage.Cursor(2), cursor)

	cursor, err = store.FindCandidates(nil, nil, cursor, 2, collect)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 1<<32 | 1}, rows)

	next, err := store.FindCandidates(nil, nil, cursor, 2, collect)
	require.NoError(t, err)
	assert.Equal(t, cursor, next, "nothing left")
	assert.Len(t, rows, 3)
}

func TestDocStorePreload(t *testing.T) {
	store, _ := newStore(t)

	var names []string
	err := store.Preload([]string{"weather"}, func(current, total int, name string) {
		assert.Equal(t, 1, total)
		names = append(names, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a_rain.conllu"}, names)
	assert.True(t, store.loaded[0])
	assert.False(t, store.loaded[1])
}

func TestDocStoreWrite(t *testing.T) {
	store, dir := newStore(t)

	src, err := store.Read(1)
	require.NoError(t, err)

	copied := sent.Doc{Title: "c_copy", Labels: []string{"news", "copy"}, Sentences: src.Sentences}
	require.NoError(t, store.Write(copied))

	data, err := os.ReadFile(filepath.Join(dir, "c_copy.conllu"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# labels = news,copy\n1\tHace"), string(data))

	docs, err := store.List("copy")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Id)

	doc, err := store.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"news", "copy"}, doc.Labels)
	assert.Len(t, doc.Sentences, 1)

	reopened, err := NewDocStore(dir, parser.Config{})
	require.NoError(t, err)
	docs, err = reopened.List("")
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}
