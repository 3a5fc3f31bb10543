package parser

import (
	"strings"
	"testing"

	"github.com/revelaction/conllu/field"
	"github.com/revelaction/conllu/sentence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentence(t *testing.T) {
	data := "# sent_id = 1\n" +
		"# text = The dog\n" +
		"1\tThe\tthe\tDET\tDT\tDefinite=Def|PronType=Art\t2\tdet\t_\t_\n" +
		"2\tdog\tdog\tNOUN\tNN\tNumber=Sing\t0\troot\t0:root\tSpaceAfter=No"

	tl, err := ParseSentence(data, Config{})
	require.NoError(t, err)
	require.Equal(t, 2, tl.Len())

	assert.Equal(t, []string{"sent_id", "text"}, tl.Metadata.Keys())
	assert.Equal(t, "The dog", tl.Metadata.GetString("text"))

	the := tl.At(0)
	assert.Equal(t, DefaultFields(), the.Keys())
	assert.Equal(t, field.NewID(1), the.Value("id"))
	assert.Equal(t, field.String("DET"), the.Value("upostag"), "alias lookup")
	assert.Equal(t, field.Int(2), the.Value("head"))
	assert.Nil(t, the.Value("deps"))
	assert.Nil(t, the.Value("misc"))
	assert.Equal(t, []string{"Definite", "PronType"}, the.Feats().Keys())

	dog := tl.At(1)
	assert.Equal(t, field.Deps{{Rel: "root", Head: field.NewID(0)}}, dog.Value("deps"))
	assert.False(t, dog.SpaceAfter())
}

func TestParseSentenceEmpty(t *testing.T) {
	_, err := ParseSentence("", Config{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseSentenceKeepsBlankLinesInside(t *testing.T) {
	data := "# meta = data\n1\tdog\n\n2\tcat\n"
	tl, err := ParseSentence(data, Config{Fields: []string{"id", "form"}})
	require.NoError(t, err)
	require.Equal(t, 2, tl.Len())
	assert.Equal(t, "cat", tl.At(1).Form())
	assert.Equal(t, "data", tl.Metadata.GetString("meta"))
}

func TestParseSentenceInvalidComments(t *testing.T) {
	data := "# meta = data2\n# meta = data\n# newdoc\n# newpar\n# invalid\n#\n1\tdog\n"
	tl, err := ParseSentence(data, Config{Fields: []string{"id", "form"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"meta", "newdoc", "newpar"}, tl.Metadata.Keys())
	assert.Equal(t, "data", tl.Metadata.GetString("meta"), "last value wins")
	v, ok := tl.Metadata.Get("newdoc")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestParseSentenceCustomMetadataParsers(t *testing.T) {
	data := "# global.columns = ID FORM\n# sent_id = 7\n1\tdog\n"
	cfg := Config{
		Fields: []string{"id", "form"},
		MetadataParsers: map[string]MetadataParser{
			"global.columns": func(key, value string) ([]sentence.Pair, error) {
				return []sentence.Pair{{Key: key, Value: strings.Fields(value)}}, nil
			},
			"sent_id": func(key, value string) ([]sentence.Pair, error) {
				return []sentence.Pair{{Key: key, Value: value + "!"}}, nil
			},
		},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	v, _ := tl.Metadata.Get("global.columns")
	assert.Equal(t, []string{"ID", "FORM"}, v)
	assert.Equal(t, "7!", tl.Metadata.GetString("sent_id"))
}

func TestParseSentenceOneToManyMetadataParser(t *testing.T) {
	data := "# text_en = The dog\n1\tdog\n"
	cfg := Config{
		Fields: []string{"id", "form"},
		MetadataParsers: map[string]MetadataParser{
			"text_en": func(key, value string) ([]sentence.Pair, error) {
				return []sentence.Pair{{Key: "text", Value: value}, {Key: "lang", Value: "en"}}, nil
			},
		},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "lang"}, tl.Metadata.Keys())
	assert.Equal(t, "The dog", tl.Metadata.GetString("text"))
}

func TestParseSentenceFallbackMetadataParser(t *testing.T) {
	data := "# some comment\n# sent_id = 1\n1\tdog\n"
	cfg := Config{
		Fields: []string{"id", "form"},
		MetadataParsers: map[string]MetadataParser{
			FallbackKey: func(key, value string) ([]sentence.Pair, error) {
				if value == "" {
					return []sentence.Pair{{Key: "comment", Value: key}}, nil
				}
				return nil, nil
			},
		},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"comment", "sent_id"}, tl.Metadata.Keys())
	assert.Equal(t, "some comment", tl.Metadata.GetString("comment"))
	assert.Equal(t, "1", tl.Metadata.GetString("sent_id"))
}

func TestParseSentenceCustomFields(t *testing.T) {
	data := "1\tThe\tthe\n2\tdog\tdog\n"
	tl, err := ParseSentence(data, Config{Fields: []string{"id", "form", "lemma"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "form", "lemma"}, tl.At(1).Keys())
	assert.Equal(t, field.String("dog"), tl.At(1).Value("lemma"))
}

func TestParseSentenceCustomFieldParsers(t *testing.T) {
	data := "1\tThe\n2\tdog\n"
	upper := func(columns []string, i int) (field.Value, error) {
		return field.String(strings.ToUpper(columns[i])), nil
	}
	cfg := Config{
		Fields:       []string{"id", "form"},
		FieldParsers: map[string]FieldParser{"id": Column(field.ParseID), "form": upper},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, "DOG", tl.At(1).Form())
}

func TestParseSentenceDefaultFieldParsersFillGaps(t *testing.T) {
	data := "1\tThe\t4\n"
	cfg := Config{
		Fields: []string{"id", "form", "head"},
		FieldParsers: map[string]FieldParser{
			"form": func(columns []string, i int) (field.Value, error) {
				return field.String(columns[i] + "!"), nil
			},
		},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, field.NewID(1), tl.At(0).Value("id"))
	assert.Equal(t, "The!", tl.At(0).Form())
	assert.Equal(t, field.Int(4), tl.At(0).Value("head"))
}

func TestParseSentenceNeighbourColumns(t *testing.T) {
	data := "1\tThe\tno\n"
	cfg := Config{
		Fields: []string{"id", "form", "mark"},
		FieldParsers: map[string]FieldParser{
			"mark": func(columns []string, i int) (field.Value, error) {
				return field.String(columns[i-1] + ":" + columns[i]), nil
			},
		},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, field.String("The:no"), tl.At(0).Value("mark"))
}

func TestParseSentenceXPOSAliasParser(t *testing.T) {
	data := "1\tThe\tDT\n"
	cfg := Config{
		Fields: []string{"id", "form", "xpostag"},
		FieldParsers: map[string]FieldParser{
			"xpos": func(columns []string, i int) (field.Value, error) {
				return field.String("x-" + columns[i]), nil
			},
		},
	}

	tl, err := ParseSentence(data, cfg)
	require.NoError(t, err)
	assert.Equal(t, field.String("x-DT"), tl.At(0).Value("xpostag"))
	assert.Equal(t, field.String("x-DT"), tl.At(0).Value("xpos"))
}

func TestParseSentenceStrictIDs(t *testing.T) {
	data := "0\tThe\n"

	tl, err := ParseSentence(data, Config{Fields: []string{"id", "form"}})
	require.NoError(t, err)
	assert.Equal(t, field.NewID(0), tl.At(0).Value("id"))

	_, err = ParseSentence(data, Config{Fields: []string{"id", "form"}, StrictIDs: true})
	assert.ErrorIs(t, err, field.ErrInvalidID)
}

func TestParseSentenceFieldError(t *testing.T) {
	data := "1\tThe\tthe\tDET\tDT\t_\tx\tdet\t_\t_\n"

	_, err := ParseSentence(data, Config{})
	require.Error(t, err)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "head", fe.Field)
	assert.ErrorIs(t, err, field.ErrInvalidInteger)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "failed parsing field 'head'")
}

func TestParseLine(t *testing.T) {
	line := "1\tThe\tthe\tDET\tDT\tDefinite=Def|PronType=Art\t4\tdet\t_\t_"

	tok, err := ParseLine(line, DefaultFields(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultFields(), tok.Keys())
	assert.Equal(t, "The", tok.Form())
	assert.Equal(t, "det", tok.Deprel())
}

func TestParseLineNullableFields(t *testing.T) {
	line := "1\t_\t_\t_\t_\t_\t_\t_\t_\t_"

	tok, err := ParseLine(line, DefaultFields(), nil)
	require.NoError(t, err)
	assert.Equal(t, field.String("_"), tok.Value("form"), "form is never nulled")
	for _, k := range []string{"lemma", "upos", "xpos", "feats", "deprel", "deps", "misc"} {
		assert.Nil(t, tok.Value(k), k)
	}
	assert.Nil(t, tok.Value("head"))
}

func TestParseLineColumnCount(t *testing.T) {
	tok, err := ParseLine("1\tThe\tthe", []string{"id", "form"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "form"}, tok.Keys(), "extra columns ignored")

	tok, err = ParseLine("1\tThe", DefaultFields(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "form"}, tok.Keys(), "missing trailing columns left out")
}

func TestParseLineSeparators(t *testing.T) {
	tok, err := ParseLine("1  The", []string{"id", "form"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "The", tok.Form())

	_, err = ParseLine("1_The", []string{"id", "form"}, nil)
	assert.ErrorIs(t, err, ErrInvalidLineFormat)

	_, err = ParseLine("1 The", []string{"id", "form"}, nil)
	assert.ErrorIs(t, err, ErrInvalidLineFormat)
}

func TestParseCommentLine(t *testing.T) {
	cases := []struct {
		line string
		want []sentence.Pair
	}{
		{"# sent_id = 1", []sentence.Pair{{Key: "sent_id", Value: "1"}}},
		{"#sent_id=1", []sentence.Pair{{Key: "sent_id", Value: "1"}}},
		{"# text = five plus three = eight", []sentence.Pair{{Key: "text", Value: "five plus three = eight"}}},
		{"  # a = 1", []sentence.Pair{{Key: "a", Value: "1"}}},
		{"# newdoc", []sentence.Pair{{Key: "newdoc"}}},
		{"#newpar", []sentence.Pair{{Key: "newpar"}}},
		{"# newdoc id = doc1", []sentence.Pair{{Key: "newdoc id", Value: "doc1"}}},
		{"# sent_id", nil},
		{"# some comment", nil},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := ParseCommentLine(tc.line, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseCommentLineWithoutHash(t *testing.T) {
	_, err := ParseCommentLine("sent_id = 1", nil)
	assert.ErrorIs(t, err, ErrInvalidCommentFormat)
}

func TestParsePairValue(t *testing.T) {
	k, v := ParsePairValue(" text = a = b ")
	assert.Equal(t, "text", k)
	assert.Equal(t, "a = b", v)

	k, v = ParsePairValue(" newdoc")
	assert.Equal(t, "newdoc", k)
	assert.Equal(t, "", v)
}

func TestColumnsFromBlock(t *testing.T) {
	cols, err := ColumnsFromBlock("# global.columns = ID FORM UPOS\n1\tThe\tDET", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "form", "upos"}, cols)

	cols, err = ColumnsFromBlock("# sent_id = 1\n# global.columns = ID FORM\n1\tThe", nil)
	require.NoError(t, err)
	assert.Nil(t, cols, "only the first line is inspected")

	cols, err = ColumnsFromBlock("# global.columns =\n1\tThe", nil)
	require.NoError(t, err)
	assert.Nil(t, cols)
}
