package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
	"github.com/revelaction/conllu/storage"
)

// Ext is the extension of the document files.
const Ext = ".conllu"

// DocStore is a directory of CoNLL-U files, one document per file. Doc ids
// are the positions of the files in name order.
type DocStore struct {
	docDir string
	cfg    parser.Config

	// In-memory cache, Sentences nil until loaded
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store. The first sentence of
// every file is read for its labels.
func NewDocStore(docDir string, cfg parser.Config) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	h := &DocStore{docDir: docDir, cfg: cfg}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != Ext {
			continue
		}

		doc, err := h.readHeader(file.Name())
		if err != nil {
			return nil, err
		}
		doc.Id = len(h.docs)
		h.docs = append(h.docs, doc)
		h.loaded = append(h.loaded, false)
	}

	return h, nil
}

func (h *DocStore) readHeader(name string) (sent.Doc, error) {
	f, err := os.Open(filepath.Join(h.docDir, name))
	if err != nil {
		return sent.Doc{}, err
	}
	defer f.Close()

	doc := sent.Doc{Title: name}
	cols, rest, err := parser.PeekColumns(f, h.cfg.MetadataParsers)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("%s: %w", name, err)
	}
	// a first declaration covers the doc unless later ones may differ
	if len(h.cfg.Fields) == 0 && !h.cfg.PerSentenceColumns {
		doc.Fields = cols
	}

	r := parser.NewReader(rest, h.cfg)
	first, err := r.Read()
	if errors.Is(err, io.EOF) {
		return doc, nil
	}
	if err != nil {
		return sent.Doc{}, fmt.Errorf("%s: %w", name, err)
	}
	doc.Labels = storage.LabelsFrom(first)
	return doc, nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc := &h.docs[id] // pointer to modify in place
	f, err := os.Open(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return err
	}
	defer f.Close()

	full, err := storage.ReadDoc(f, h.cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Title, err)
	}

	// Title and Id are already set
	doc.Sentences = full.Sentences
	doc.Labels = full.Labels
	doc.Fields = full.Fields
	h.loaded[id] = true
	return nil
}

// Preload loads into memory the docs carrying all labels.
func (h *DocStore) Preload(labels []string, cb func(current, total int, name string)) error {
	var ids []int
	for _, doc := range h.docs {
		if storage.HasLabels(doc.Labels, labels) {
			ids = append(ids, doc.Id)
		}
	}

	for i, id := range ids {
		if cb != nil {
			cb(i+1, len(ids), h.docs[id].Title)
		}
		if err := h.load(id); err != nil {
			return err
		}
	}
	return nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	docs := make([]sent.Doc, 0, len(h.docs))
	for _, doc := range h.docs {
		if !storage.MatchLabel(doc.Labels, labelMatch) {
			continue
		}
		doc.Sentences = nil
		docs = append(docs, doc)
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("%w: id %d", storage.ErrDocNotFound, id)
	}
	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}
	return h.docs[id], nil
}

// FindCandidates scans the docs in order. The RowID of a sentence packs
// the doc id in the high 32 bits and the sentence position, starting at 1,
// in the low ones.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onCandidate func(storage.Candidate) error) (storage.Cursor, error) {
	cursor := after
	found := 0

	for id := int(after >> 32); id < len(h.docs); id++ {
		if !storage.HasLabels(h.docs[id].Labels, labels) {
			continue
		}
		if err := h.load(id); err != nil {
			return after, err
		}

		doc := h.docs[id]
		for i, tl := range doc.Sentences {
			rowID := int64(id)<<32 | int64(i+1)
			if storage.Cursor(rowID) <= after || !storage.HasLemmas(tl, lemmas) {
				continue
			}
			if limit > 0 && found >= limit {
				return cursor, nil
			}

			err := onCandidate(storage.Candidate{
				RowID:    rowID,
				DocID:    id,
				DocTitle: doc.Title,
				SentID:   i,
				Sentence: tl,
			})
			if err != nil {
				return cursor, err
			}
			cursor = storage.Cursor(rowID)
			found++
		}
	}

	return cursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	lists := make([][]string, 0, len(h.docs))
	for _, doc := range h.docs {
		lists = append(lists, doc.Labels)
	}
	return storage.UniqueLabels(pattern, lists...), nil
}

// Write stores doc as <title>.conllu, replacing a file of the same name.
func (h *DocStore) Write(doc sent.Doc) error {
	name := doc.Title
	if name == "" {
		return fmt.Errorf("doc without title")
	}
	if !strings.HasSuffix(name, Ext) {
		name += Ext
	}

	f, err := os.Create(filepath.Join(h.docDir, filepath.Base(name)))
	if err != nil {
		return err
	}
	if err := storage.WriteDoc(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	// The file is parsed again on the next Read.
	doc.Title = filepath.Base(name)
	doc.Sentences = nil
	for i := range h.docs {
		if h.docs[i].Title == doc.Title {
			doc.Id = i
			h.docs[i] = doc
			h.loaded[i] = false
			return nil
		}
	}
	doc.Id = len(h.docs)
	h.docs = append(h.docs, doc)
	h.loaded = append(h.loaded, false)
	return nil
}
