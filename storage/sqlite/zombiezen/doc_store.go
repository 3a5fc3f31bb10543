package zombiezen

import (
	"context"
	"fmt"
	"strings"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
	"github.com/revelaction/conllu/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocStore keeps every sentence as its CoNLL-U text plus a lemma index
// used by FindCandidates.
type DocStore struct {
	pool *sqlitex.Pool
	cfg  parser.Config
}

var _ storage.DocRepository = (*DocStore)(nil)

// NewDocStore wraps a pool created with Open. cfg parses the stored
// sentences; its Fields are overridden by the columns recorded per
// sentence, or else per doc.
func NewDocStore(pool *sqlitex.Pool, cfg parser.Config) *DocStore {
	return &DocStore{pool: pool, cfg: cfg}
}

// parseConfig returns the config for a stored sentence. The columns it was
// written with win over the doc columns.
func (h *DocStore) parseConfig(sentFields, docFields string) parser.Config {
	cfg := h.cfg
	switch {
	case sentFields != "":
		cfg.Fields = strings.Fields(sentFields)
	case docFields != "":
		cfg.Fields = strings.Fields(docFields)
	}
	return cfg
}

// sentenceFields returns the columns the sentence serializes with.
func sentenceFields(tl *sent.TokenList) string {
	if len(tl.Tokens) == 0 {
		return ""
	}
	return strings.Join(tl.Tokens[0].Keys(), " ")
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels, fields FROM docs ORDER BY title", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: storage.ParseLabels(stmt.ColumnText(2)),
				Fields: strings.Fields(stmt.ColumnText(3)),
			}
			if storage.MatchLabel(doc.Labels, labelMatch) {
				docs = append(docs, doc)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false
	var fields string

	err = sqlitex.Execute(conn, "SELECT title, labels, fields FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			doc.Labels = storage.ParseLabels(stmt.ColumnText(1))
			fields = stmt.ColumnText(2)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("%w: id %d", storage.ErrDocNotFound, id)
	}
	doc.Fields = strings.Fields(fields)

	err = sqlitex.Execute(conn, "SELECT rowid, data, fields FROM sentences WHERE doc_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []any{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			tl, err := parser.ParseSentence(stmt.ColumnText(1), h.parseConfig(stmt.ColumnText(2), fields))
			if err != nil {
				return fmt.Errorf("sentence %d: %w", stmt.ColumnInt64(0), err)
			}
			doc.Sentences = append(doc.Sentences, tl)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// FindCandidates selects in one query the sentences after the cursor whose
// rowid is in the intersection of the lemma index entries and whose doc
// carries every label. Without lemmas every sentence is a candidate.
func (h *DocStore) FindCandidates(lemmas []string, labels []string, after storage.Cursor, limit int, onCandidate func(storage.Candidate) error) (storage.Cursor, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	var q strings.Builder
	args := []any{int64(after)}

	q.WriteString("SELECT s.rowid, s.doc_id, d.title, d.fields, s.data, " +
		"(SELECT COUNT(*) FROM sentences p WHERE p.doc_id = s.doc_id AND p.rowid < s.rowid), s.fields " +
		"FROM sentences s JOIN docs d ON s.doc_id = d.id WHERE s.rowid > ?")
	if len(lemmas) > 0 {
		q.WriteString(" AND s.rowid IN (")
		for i, lemma := range lemmas {
			if i > 0 {
				q.WriteString(" INTERSECT ")
			}
			q.WriteString("SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ?")
			args = append(args, lemma)
		}
		q.WriteString(")")
	}
	// whole label, case sensitive
	for _, label := range labels {
		q.WriteString(" AND instr(',' || d.labels || ',', ',' || ? || ',') > 0")
		args = append(args, label)
	}
	q.WriteString(" ORDER BY s.rowid")
	if limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	cursor := after
	err = sqlitex.Execute(conn, q.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			rowID := stmt.ColumnInt64(0)
			tl, err := parser.ParseSentence(stmt.ColumnText(4), h.parseConfig(stmt.ColumnText(6), stmt.ColumnText(3)))
			if err != nil {
				return fmt.Errorf("sentence %d: %w", rowID, err)
			}

			err = onCandidate(storage.Candidate{
				RowID:    rowID,
				DocID:    stmt.ColumnInt(1),
				DocTitle: stmt.ColumnText(2),
				SentID:   stmt.ColumnInt(5),
				Sentence: tl,
			})
			if err != nil {
				return err
			}
			cursor = storage.Cursor(rowID)
			return nil
		},
	})
	if err != nil {
		return cursor, err
	}

	return cursor, nil
}

func (h *DocStore) Labels(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var lists [][]string
	err = sqlitex.Execute(conn, "SELECT labels FROM docs", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			lists = append(lists, storage.ParseLabels(stmt.ColumnText(0)))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return storage.UniqueLabels(pattern, lists...), nil
}

// Write inserts doc, its sentences and their lemmas in one transaction.
// A doc with the same title is an ErrDocExists.
func (h *DocStore) Write(doc sent.Doc) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels, fields) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []any{doc.Title, strings.Join(doc.Labels, ","), strings.Join(doc.Fields, " ")},
	})
	if sqlite.ErrCode(err).ToPrimary() == sqlite.ResultConstraint {
		return fmt.Errorf("%w: %s", storage.ErrDocExists, doc.Title)
	}
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for i, tl := range doc.Sentences {
		data, serr := tl.Serialize()
		if serr != nil {
			return fmt.Errorf("sentence %d: %w", i+1, serr)
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, data, fields) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []any{docID, data, sentenceFields(tl)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for _, lemma := range storage.Lemmas(tl) {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []any{lemma, sentRowID},
			})
			if err != nil {
				return fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return nil
}
