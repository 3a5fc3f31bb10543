package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/query"
	"github.com/revelaction/conllu/storage"
)

type QueryOptions struct {
	DB       string
	NoColor  bool
	NoPrefix bool
	Format   string

	// Preload docs carrying all these labels before the prompt.
	Preload []string
}

func queryCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive filter prompt over a doc repository",
		Flags: []cli.Flag{
			dbFlag(),
			formatFlag(),
			&cli.BoolFlag{Name: "no-color", Usage: "do not highlight matched tokens"},
			&cli.BoolFlag{Name: "no-prefix", Usage: "do not prefix sentences with doc and position"},
			&cli.StringSliceFlag{Name: "preload", Usage: "load the docs with these labels into memory first"},
		},
		Action: func(c *cli.Context) error {
			opts := QueryOptions{
				DB:       dbPath(c, e),
				NoColor:  c.Bool("no-color"),
				NoPrefix: c.Bool("no-prefix"),
				Format:   c.String("format"),
				Preload:  c.StringSlice("preload"),
			}
			return queryCommand(opts, e)
		},
	}
}

// Query command
func queryCommand(opts QueryOptions, e *env) error {
	p := &Pool{}
	defer p.Close()
	repo, err := NewDocRepository(p, opts.DB, e.cfg.Parser())
	if err != nil {
		return err
	}

	if pl, ok := repo.(storage.Preloader); ok && len(opts.Preload) > 0 {
		progress, bar := newProgress(e.ui.Err, 0)
		err := pl.Preload(opts.Preload, func(current, total int, name string) {
			bar.Total = total
			bar.Set(current)
			e.log.Debug().Str("doc", name).Msg("preloaded")
		})
		progress.Stop()
		if err != nil {
			return err
		}
	}

	r, err := newRenderer(e.ui.Out, e.cfg, opts.Format)
	if err != nil {
		return err
	}
	r.HasColor = e.cfg.Color && !opts.NoColor
	r.HasPrefix = !opts.NoPrefix

	// now present the REPL
	return query.NewHandler(repo, r, e.log).Run()
}
