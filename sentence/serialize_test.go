package sentence

import (
	"encoding/json"
	"testing"

	"github.com/revelaction/conllu/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	feats := field.NewDict()
	feats.Set("Definite", field.String("Def"))
	feats.Set("PronType", field.String("Art"))
	misc := field.NewDict()
	misc.Set("SpaceAfter", field.String("No"))

	tl := NewTokenList([]*Token{
		NewToken(
			Field{"id", field.NewID(1)},
			Field{"form", field.String("The")},
			Field{"lemma", field.String("the")},
			Field{"upos", field.String("DET")},
			Field{"xpos", field.String("DT")},
			Field{"feats", feats},
			Field{"head", field.Int(2)},
			Field{"deprel", field.String("det")},
			Field{"deps", nil},
			Field{"misc", nil},
		),
		NewToken(
			Field{"id", field.NewID(2)},
			Field{"form", field.String("dog")},
			Field{"lemma", field.String("dog")},
			Field{"upos", field.String("NOUN")},
			Field{"xpos", field.String("NN")},
			Field{"feats", nil},
			Field{"head", field.Int(0)},
			Field{"deprel", field.String("root")},
			Field{"deps", field.Deps{{Rel: "root", Head: field.NewID(0)}}},
			Field{"misc", misc},
		),
	}, NewMetadata(Pair{"newdoc", nil}, Pair{"sent_id", "1"}, Pair{"empty", ""}))

	got, err := tl.Serialize()
	require.NoError(t, err)
	assert.Equal(t,
		"# newdoc\n"+
			"# sent_id = 1\n"+
			"# empty\n"+
			"1\tThe\tthe\tDET\tDT\tDefinite=Def|PronType=Art\t2\tdet\t_\t_\n"+
			"2\tdog\tdog\tNOUN\tNN\t_\t0\troot\t0:root\tSpaceAfter=No\n"+
			"\n",
		got)
}

func TestSerializeNonStringMetadata(t *testing.T) {
	tl := NewTokenList([]*Token{word(1, "a", 0, "root")}, NewMetadata(Pair{"count", 3}))
	got, err := tl.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "# count = 3\n1\ta\t0\troot\n\n", got)
}

func TestSerializeEmpty(t *testing.T) {
	got, err := NewTokenList(nil, nil).Serialize()
	require.NoError(t, err)
	assert.Equal(t, "\n\n", got)

	got, err = NewTokenList(nil, NewMetadata(Pair{"sent_id", "1"})).Serialize()
	require.NoError(t, err)
	assert.Equal(t, "# sent_id = 1\n\n", got)
}

func TestSerializeError(t *testing.T) {
	bad := field.NewDict()
	bad.Set("Nested", field.NewDict())
	tl := NewTokenList([]*Token{NewToken(Field{"id", field.NewID(1)}, Field{"misc", bad})}, nil)

	_, err := tl.Serialize()
	assert.ErrorIs(t, err, field.ErrSerialization)
	assert.Contains(t, err.Error(), "field 'misc'")
}

func TestTokenListJSON(t *testing.T) {
	feats := field.NewDict()
	feats.Set("Number", field.String("Sing"))
	tl := NewTokenList([]*Token{
		NewToken(Field{"id", field.NewID(1)}, Field{"form", field.String("dog")}, Field{"feats", feats}, Field{"lemma", nil}),
	}, NewMetadata(Pair{"text", "dog"}))

	b, err := json.Marshal(tl)
	require.NoError(t, err)
	assert.Equal(t,
		`{"metadata":{"text":"dog"},"tokens":[{"id":1,"form":"dog","feats":{"Number":"Sing"},"lemma":null}]}`,
		string(b))
}
