package main

import (
	"github.com/urfave/cli/v2"

	sent "github.com/revelaction/conllu/sentence"
)

type TreeOptions struct {
	Indent        *int // nil = configured value
	Exclude       []string
	SyntheticRoot bool
	Files         []string
}

func treeCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "print the dependency tree of every sentence",
		ArgsUsage: "[files...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "indent", Usage: "spaces per tree level"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "fields left out of the node lines"},
			&cli.BoolFlag{Name: "synthetic-root", Usage: "join several roots under a synthetic root"},
		},
		Action: func(c *cli.Context) error {
			opts := TreeOptions{
				Exclude:       c.StringSlice("exclude"),
				SyntheticRoot: c.Bool("synthetic-root"),
				Files:         c.Args().Slice(),
			}
			if c.IsSet("indent") {
				indent := c.Int("indent")
				opts.Indent = &indent
			}
			return treeCommand(opts, e)
		},
	}
}

func treeCommand(opts TreeOptions, e *env) error {
	r, err := newRenderer(e.ui.Out, e.cfg, "tree")
	if err != nil {
		return err
	}
	r.HasColor = false
	if opts.Indent != nil {
		r.Indent = *opts.Indent
	}
	if len(opts.Exclude) > 0 {
		r.Exclude = opts.Exclude
	}
	if opts.SyntheticRoot {
		r.TreeOpts = []sent.TreeOption{sent.WithSyntheticRoot()}
	}

	return eachSentence(e.ui, opts.Files, e.cfg.Parser(), e.log, func(_ string, _ int, tl *sent.TokenList) error {
		return r.Sentence(tl)
	})
}
