package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/conllu/parser"
	sent "github.com/revelaction/conllu/sentence"
	"github.com/revelaction/conllu/storage"
	"github.com/revelaction/conllu/storage/filesystem"
	"github.com/revelaction/conllu/storage/sqlite/zombiezen"
)

// Pool opens the sqlite pool once and closes it at the end of a command.
type Pool struct {
	p *sqlitex.Pool
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		return p.p, nil
	}
	pool, err := zombiezen.Open(path)
	if err != nil {
		return nil, err
	}
	p.p = pool
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p != nil {
		return p.p.Close()
	}
	return nil
}

// NewDocRepository opens a directory of .conllu files or a sqlite
// database, depending on what path is.
func NewDocRepository(p *Pool, path string, cfg parser.Config) (storage.DocRepository, error) {
	if path == "" {
		return nil, errors.New("no repository given: use --db or set db in the config")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path, cfg)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool, cfg), nil
}

// eachSentence parses the named files in order, stdin when there are none.
// A sentence that fails to parse stops the command.
func eachSentence(ui UI, files []string, cfg parser.Config, log zerolog.Logger, fn func(name string, i int, tl *sent.TokenList) error) error {
	if len(files) == 0 {
		return readSentences(ui.In, "-", cfg, log, fn)
	}

	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = readSentences(f, name, cfg, log, fn)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func readSentences(r io.Reader, name string, cfg parser.Config, log zerolog.Logger, fn func(name string, i int, tl *sent.TokenList) error) error {
	i := 0
	for tl, err := range parser.NewReader(r, cfg).All() {
		if err != nil {
			log.Error().Str("doc", name).Int("sentence", i+1).Err(err).Msg("parse failed")
			return fmt.Errorf("%s: sentence %d: %w", name, i+1, err)
		}
		if err := fn(name, i, tl); err != nil {
			return err
		}
		i++
	}
	log.Debug().Str("doc", name).Int("sentences", i).Msg("parsed")
	return nil
}
