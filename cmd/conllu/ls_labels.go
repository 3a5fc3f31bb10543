package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/storage"
)

type LsLabelsOptions struct {
	DB    string
	Match string
}

func labelsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "labels",
		Usage:     "list the labels of a repository",
		ArgsUsage: "[match]",
		Flags:     []cli.Flag{dbFlag()},
		Action: func(c *cli.Context) error {
			opts := LsLabelsOptions{DB: dbPath(c, e), Match: c.Args().First()}
			p := &Pool{}
			defer p.Close()
			repo, err := NewDocRepository(p, opts.DB, e.cfg.Parser())
			if err != nil {
				return err
			}
			return lsLabelsCommand(repo, opts, e.ui)
		},
	}
}

func lsLabelsCommand(repo storage.DocReader, opts LsLabelsOptions, ui UI) error {
	labels, err := repo.Labels(opts.Match)
	if err != nil {
		return err
	}

	if len(labels) > 0 {
		fmt.Fprintln(ui.Out, strings.Join(labels, ", "))
	}

	return nil
}
