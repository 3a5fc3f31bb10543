package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/storage"
)

type LsDocOptions struct {
	DB    string
	Label string
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "db", Usage: "doc repository: a directory of .conllu files or a sqlite database"}
}

// dbPath falls back to the configured repository.
func dbPath(c *cli.Context, e *env) string {
	if db := c.String("db"); db != "" {
		return db
	}
	return e.cfg.DB
}

func lsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "list the docs of a repository",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.StringFlag{Name: "label", Usage: "only docs with a label containing this string"},
		},
		Action: func(c *cli.Context) error {
			opts := LsDocOptions{DB: dbPath(c, e), Label: c.String("label")}
			p := &Pool{}
			defer p.Close()
			repo, err := NewDocRepository(p, opts.DB, e.cfg.Parser())
			if err != nil {
				return err
			}
			return lsDocCommand(repo, opts, e.ui)
		},
	}
}

func lsDocCommand(repo storage.DocReader, opts LsDocOptions, ui UI) error {
	docs, err := repo.List(opts.Label)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %s", doc.Id, doc.Title)
		if len(doc.Labels) > 0 {
			fmt.Fprintf(ui.Out, " [%s]", strings.Join(doc.Labels, ", "))
		}
		fmt.Fprintln(ui.Out)
	}

	return nil
}
