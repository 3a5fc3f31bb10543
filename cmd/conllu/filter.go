package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/match"
	sent "github.com/revelaction/conllu/sentence"
)

type FilterOptions struct {
	Expr      string
	Format    string
	NoColor   bool
	HasPrefix bool
	Files     []string
}

func filterCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "filter",
		Usage:     "print the sentences with tokens matching an expression",
		ArgsUsage: "EXPR [files...]",
		Description: "EXPR is a list of space separated conditions on token fields, all of\n" +
			"which one token must satisfy:\n\n" +
			"   lemma=dog   upos!=NOUN   form~^[A-Z]   feats.Number=Sing   misc=_",
		Flags: []cli.Flag{
			formatFlag(),
			&cli.BoolFlag{Name: "no-color", Usage: "do not highlight matched tokens"},
			&cli.BoolFlag{Name: "prefix", Usage: "prefix every sentence with its file and position"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return errors.New("missing filter expression")
			}
			opts := FilterOptions{
				Expr:      c.Args().First(),
				Format:    c.String("format"),
				NoColor:   c.Bool("no-color"),
				HasPrefix: c.Bool("prefix"),
				Files:     c.Args().Tail(),
			}
			return filterCommand(opts, e)
		},
	}
}

func filterCommand(opts FilterOptions, e *env) error {
	expr, err := match.Parse(opts.Expr)
	if err != nil {
		return err
	}

	r, err := newRenderer(e.ui.Out, e.cfg, opts.Format)
	if err != nil {
		return err
	}
	if opts.NoColor {
		r.HasColor = false
	}
	r.HasPrefix = opts.HasPrefix

	matcher := match.NewMatcher(expr)
	docIDs := map[string]int{}

	return eachSentence(e.ui, opts.Files, e.cfg.Parser(), e.log, func(name string, i int, tl *sent.TokenList) error {
		docID, ok := docIDs[name]
		if !ok {
			docID = len(docIDs)
			docIDs[name] = docID
		}

		m := matcher.MatchSentence(docID, name, i, tl)
		if m == nil {
			return nil
		}
		return r.Render(m)
	})
}
