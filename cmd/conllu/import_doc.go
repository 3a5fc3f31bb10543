package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/storage"
	"github.com/revelaction/conllu/storage/filesystem"
	"github.com/revelaction/conllu/storage/sqlite/zombiezen"
)

type ImportDocOptions struct {
	From string
	To   string

	// Skip docs already in the database instead of failing.
	SkipExisting bool
}

func importCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a directory of .conllu files into a sqlite database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Required: true, Usage: "directory of .conllu files"},
			&cli.StringFlag{Name: "to", Required: true, Usage: "sqlite database, created if missing"},
			&cli.BoolFlag{Name: "skip-existing", Usage: "skip docs with a title already imported"},
		},
		Action: func(c *cli.Context) error {
			opts := ImportDocOptions{From: c.String("from"), To: c.String("to"), SkipExisting: c.Bool("skip-existing")}
			return importDocCommand(opts, e)
		},
	}
}

func importDocCommand(opts ImportDocOptions, e *env) error {
	src, err := filesystem.NewDocStore(opts.From, e.cfg.Parser())
	if err != nil {
		return err
	}

	pool, err := zombiezen.Open(opts.To)
	if err != nil {
		return err
	}
	defer pool.Close()

	dst := zombiezen.NewDocStore(pool, e.cfg.Parser())

	fmt.Fprintf(e.ui.Out, "Reading docs from %s...\n", opts.From)
	docs, err := src.List("")
	if err != nil {
		return err
	}

	progress, bar := newProgress(e.ui.Err, len(docs))
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		if b.Current() == 0 {
			return ""
		}
		return docs[b.Current()-1].Title
	})

	count := 0
	for _, docMeta := range docs {
		doc, err := src.Read(docMeta.Id)
		if err != nil {
			progress.Stop()
			return fmt.Errorf("failed to read doc %s: %w", docMeta.Title, err)
		}

		err = dst.Write(doc)
		if opts.SkipExisting && errors.Is(err, storage.ErrDocExists) {
			e.log.Info().Str("doc", doc.Title).Msg("already imported, skipped")
			bar.Incr()
			continue
		}
		if err != nil {
			progress.Stop()
			return fmt.Errorf("failed to write doc %s: %w", docMeta.Title, err)
		}
		e.log.Debug().Str("doc", doc.Title).Int("sentences", len(doc.Sentences)).Msg("imported")
		count++
		bar.Incr()
	}
	progress.Stop()

	fmt.Fprintf(e.ui.Out, "Successfully imported %d docs from %s to %s\n", count, opts.From, opts.To)
	return nil
}

// newProgress starts a progress bar rendered on w.
func newProgress(w io.Writer, total int) (*uiprogress.Progress, *uiprogress.Bar) {
	progress := uiprogress.New()
	progress.Out = w
	bar := progress.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	progress.Start()
	return progress, bar
}
