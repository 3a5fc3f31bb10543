package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const complete = `#! /bin/bash

_conllu_autocomplete() {
    local cur opts

    # Try to initialize using bash-completion if available
    if declare -F _init_completion >/dev/null 2>&1; then
        _init_completion -n "=:" 2>/dev/null
    fi

    # Fallback if cur is not set (e.g. _init_completion failed or missing)
    if [[ -z "$cur" ]]; then
        cur="${COMP_WORDS[COMP_CWORD]}"
    fi

    # the words before the cursor, asking conllu for the candidates
    opts=$(${COMP_WORDS[@]:0:$COMP_CWORD} --generate-bash-completion 2>/dev/null)

    if [ $? -eq 0 ]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
}

complete -o default -F _conllu_autocomplete conllu
`

func bashCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script",
		Action: func(c *cli.Context) error {
			return bashCommand(e.ui)
		},
	}
}

func bashCommand(ui UI) error {
	_, err := fmt.Fprint(ui.Out, complete)
	return err
}
