package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/stat"
	"github.com/revelaction/conllu/storage"
)

type StatOptions struct {
	DB    string
	Files []string
	Top   int
}

func statCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print corpus statistics",
		ArgsUsage: "[files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "count a doc repository instead of files"},
			&cli.IntFlag{Name: "top", Value: 10, Usage: "histogram entries shown"},
		},
		Action: func(c *cli.Context) error {
			opts := StatOptions{DB: c.String("db"), Files: c.Args().Slice(), Top: c.Int("top")}
			return statCommand(opts, e)
		},
	}
}

func statCommand(opts StatOptions, e *env) error {
	hdl := stat.NewHandler()

	switch {
	case opts.DB != "":
		p := &Pool{}
		defer p.Close()
		repo, err := NewDocRepository(p, opts.DB, e.cfg.Parser())
		if err != nil {
			return err
		}
		docs, err := repo.List("")
		if err != nil {
			return err
		}
		for _, meta := range docs {
			doc, err := repo.Read(meta.Id)
			if err != nil {
				return err
			}
			hdl.Aggregate(doc)
		}

	case len(opts.Files) == 0:
		doc, err := storage.ReadDoc(e.ui.In, e.cfg.Parser())
		if err != nil {
			return err
		}
		hdl.Aggregate(doc)

	default:
		for _, name := range opts.Files {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			doc, err := storage.ReadDoc(f, e.cfg.Parser())
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			hdl.Aggregate(doc)
		}
	}

	return printStats(e.ui.Out, hdl.Get(), opts.Top)
}

func printStats(w io.Writer, s stat.Stats, top int) error {
	fmt.Fprintf(w, "docs       %d\n", s.NumDocs)
	fmt.Fprintf(w, "sentences  %d\n", s.NumSentences)
	fmt.Fprintf(w, "tokens     %d (%d per sentence)\n", s.NumTokens, s.TokensPerSentenceMean)
	fmt.Fprintf(w, "multiword  %d\n", s.NumMultiword)
	fmt.Fprintf(w, "empty      %d\n", s.NumEmpty)

	for _, h := range []struct {
		name string
		m    map[string]int
	}{{"upos", s.UPOS}, {"deprel", s.Deprel}} {
		if len(h.m) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", h.name)
		for i, c := range stat.Sorted(h.m) {
			if top > 0 && i >= top {
				break
			}
			fmt.Fprintf(w, "  %-12s %d\n", c.Key, c.Count)
		}
	}
	return nil
}
