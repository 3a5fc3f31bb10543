package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/conllu/render"
	sent "github.com/revelaction/conllu/sentence"
)

type CatOptions struct {
	Format string
	Files  []string
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: " + strings.Join(render.SupportedFormats(), ", "),
	}
}

func catCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "parse CoNLL-U files and write them back",
		ArgsUsage: "[files...]",
		Flags:     []cli.Flag{formatFlag()},
		Action: func(c *cli.Context) error {
			opts := CatOptions{Format: c.String("format"), Files: c.Args().Slice()}
			return catCommand(opts, e)
		},
	}
}

func catCommand(opts CatOptions, e *env) error {
	r, err := newRenderer(e.ui.Out, e.cfg, opts.Format)
	if err != nil {
		return err
	}
	r.HasColor = false

	return eachSentence(e.ui, opts.Files, e.cfg.Parser(), e.log, func(_ string, _ int, tl *sent.TokenList) error {
		return r.Sentence(tl)
	})
}

// newRenderer configures a renderer from the settings. A non empty format
// overrides the configured one.
func newRenderer(w io.Writer, cfg Config, format string) (*render.Renderer, error) {
	if format == "" {
		format = cfg.Format
	}
	if !render.IsSupported(format) {
		return nil, fmt.Errorf("unsupported format %q, valid: %s", format, strings.Join(render.SupportedFormats(), ", "))
	}

	r := render.NewRenderer(w)
	r.Format = format
	r.HasColor = cfg.Color
	r.Indent = cfg.Indent
	r.Exclude = cfg.ExcludeFields
	r.TreeOpts = cfg.TreeOptions()
	return r, nil
}
