package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Set with -ldflags at build time.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// env is what the Before hook prepares for the commands.
type env struct {
	ui  UI
	cfg Config
	log zerolog.Logger
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr, In: os.Stdin}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "conllu: %v\n", err)
}

func newApp(ui UI) *cli.App {
	e := &env{ui: ui, log: zerolog.Nop()}

	return &cli.App{
		Name:                 "conllu",
		Usage:                "parse, inspect and store CoNLL-U treebanks",
		Version:              BuildTag,
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		Reader:               ui.In,
		EnableBashCompletion: true,
		HideVersion:          true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file (default $HOME/.conllu.yaml)",
				EnvVars: []string{"CONLLU_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug messages",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if c.Bool("verbose") {
				cfg.LogLevel = "debug"
			}
			log, err := newLogger(ui.Err, cfg.LogLevel)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = log
			return nil
		},
		// errors are printed once by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			catCmd(e),
			treeCmd(e),
			filterCmd(e),
			statCmd(e),
			importCmd(e),
			exportCmd(e),
			lsCmd(e),
			labelsCmd(e),
			queryCmd(e),
			versionCmd(e),
			bashCmd(e),
		},
	}
}
