package parser

import (
	"errors"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/revelaction/conllu/sentence"
)

// Reader parses a CoNLL-U stream one sentence at a time.
//
// When Config.Fields is empty the first block is inspected for a
// global.columns comment before it is parsed, and the declared columns are
// used for the rest of the stream. Every Reader keeps its own columns; two
// Readers never share them.
type Reader struct {
	seg    *Segmenter
	cfg    Config
	fields []string
	probed bool
}

func NewReader(r io.Reader, cfg Config) *Reader {
	return &Reader{seg: NewSegmenter(r), cfg: cfg}
}

// Fields returns a copy of the columns of the last sentence read.
func (r *Reader) Fields() []string {
	if len(r.cfg.Fields) > 0 {
		return slices.Clone(r.cfg.Fields)
	}
	if len(r.fields) > 0 {
		return slices.Clone(r.fields)
	}
	return DefaultFields()
}

// Read returns the next sentence, or io.EOF after the last one.
func (r *Reader) Read() (*sentence.TokenList, error) {
	if !r.seg.Scan() {
		if err := r.seg.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	block := r.seg.Text()

	cfg := r.cfg
	if len(cfg.Fields) == 0 {
		if !r.probed || cfg.PerSentenceColumns {
			cols, err := ColumnsFromBlock(block, cfg.MetadataParsers)
			if err != nil {
				return nil, err
			}
			if len(cols) > 0 {
				r.fields = cols
			}
			r.probed = true
		}
		cfg.Fields = r.fields
	}

	return ParseSentence(block, cfg)
}

// ReadTree returns the dependency tree of the next sentence.
func (r *Reader) ReadTree(opts ...sentence.TreeOption) (*sentence.TokenTree, error) {
	tl, err := r.Read()
	if err != nil {
		return nil, err
	}
	return tl.ToTree(opts...)
}

// ReadAll reads sentences until EOF.
func (r *Reader) ReadAll() ([]*sentence.TokenList, error) {
	var all []*sentence.TokenList
	for {
		tl, err := r.Read()
		if errors.Is(err, io.EOF) {
			return all, nil
		}
		if err != nil {
			return all, err
		}
		all = append(all, tl)
	}
}

// All iterates the remaining sentences. Iteration stops after the first
// error, which is yielded with a nil sentence.
func (r *Reader) All() iter.Seq2[*sentence.TokenList, error] {
	return func(yield func(*sentence.TokenList, error) bool) {
		for {
			tl, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tl, err) || err != nil {
				return
			}
		}
	}
}

// Parse parses a whole document held in memory.
func Parse(data string, cfg Config) ([]*sentence.TokenList, error) {
	return NewReader(strings.NewReader(data), cfg).ReadAll()
}

// ParseTree parses a whole document and builds one tree per sentence.
func ParseTree(data string, cfg Config, opts ...sentence.TreeOption) ([]*sentence.TokenTree, error) {
	r := NewReader(strings.NewReader(data), cfg)
	var trees []*sentence.TokenTree
	for {
		tree, err := r.ReadTree(opts...)
		if errors.Is(err, io.EOF) {
			return trees, nil
		}
		if err != nil {
			return trees, err
		}
		trees = append(trees, tree)
	}
}
