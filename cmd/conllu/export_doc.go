package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/storage/filesystem"
	"github.com/revelaction/conllu/storage/sqlite/zombiezen"
)

type ExportDocOptions struct {
	From string
	To   string
}

func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export the docs of a sqlite database as .conllu files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "sqlite database"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "target directory, created if missing"},
		},
		Action: func(c *cli.Context) error {
			return exportDocCommand(ExportDocOptions{From: c.String("from"), To: c.String("to")}, e)
		},
	}
}

func exportDocCommand(opts ExportDocOptions, e *env) error {
	if _, err := os.Stat(opts.From); err != nil {
		return fmt.Errorf("repository not found: %s", opts.From)
	}

	pool, err := zombiezen.Open(opts.From)
	if err != nil {
		return err
	}
	defer pool.Close()
	src := zombiezen.NewDocStore(pool, e.cfg.Parser())

	// Ensure target directory exists
	if err := os.MkdirAll(opts.To, 0755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	dst, err := filesystem.NewDocStore(opts.To, e.cfg.Parser())
	if err != nil {
		return err
	}

	docs, err := src.List("")
	if err != nil {
		return err
	}

	progress, bar := newProgress(e.ui.Err, len(docs))

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			progress.Stop()
			return fmt.Errorf("failed to read doc %s (id %d): %w", docMeta.Title, docMeta.Id, err)
		}

		if err := dst.Write(doc); err != nil {
			progress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		e.log.Debug().Str("doc", doc.Title).Int("sentences", len(doc.Sentences)).Msg("exported")
		count++
		bar.Incr()
	}
	progress.Stop()

	fmt.Fprintf(e.ui.Out, "Successfully exported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}
