package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/rs/zerolog"

	"github.com/revelaction/conllu/match"
	"github.com/revelaction/conllu/render"
	"github.com/revelaction/conllu/search"
	"github.com/revelaction/conllu/storage"
)

const (
	// labelPrefix is the Character in the prompt that prefixes a label
	labelPrefix = "/"

	// maximum number of candidates examined per query
	candidateLimit = 2000
	batchSize      = 500
)

// fieldPaths are suggested by the completer, with the operator appended.
var fieldPaths = []prompt.Suggest{
	{Text: "id=", Description: "token id"},
	{Text: "form=", Description: "word form"},
	{Text: "lemma=", Description: "lemma (indexed)"},
	{Text: "upos=", Description: "universal POS tag"},
	{Text: "xpos=", Description: "language specific POS tag"},
	{Text: "feats.", Description: "morphological feature"},
	{Text: "head=", Description: "head id"},
	{Text: "deprel=", Description: "dependency relation"},
	{Text: "deps=", Description: "enhanced dependencies"},
	{Text: "misc.", Description: "misc attribute"},
}

type Handler struct {
	DocRepo  storage.DocReader
	Renderer *render.Renderer
	Log      zerolog.Logger
}

func NewHandler(dr storage.DocReader, r *render.Renderer, log zerolog.Logger) *Handler {
	return &Handler{
		DocRepo:  dr,
		Renderer: r,
		Log:      log,
	}
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, /label: filter docs, 🔧 quit")

	labels, err := h.DocRepo.Labels("")
	if err != nil {
		return err
	}

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer(labels),
			prompt.OptionTitle("conllu query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintln(h.Renderer.W, "Prefix set to "+fmt.Sprintf("%t", h.Renderer.HasPrefix))
				}}),
		)

		if in == "quit" {
			return nil
		}
		if strings.TrimSpace(in) == "" {
			continue
		}

		history = append(history, in)
		if err := h.Query(in); err != nil {
			fmt.Fprintf(h.Renderer.W, "Error: %v\n", err)
		}
	}
}

// Query runs one prompt line and renders the matched sentences.
func (h *Handler) Query(in string) error {
	labels, expr, err := Parse(in)
	if err != nil {
		return err
	}

	s := search.New(h.DocRepo).WithLabels(labels...)
	h.Log.Debug().Str("expr", expr.String()).Strs("labels", labels).Strs("lemmas", expr.Lemmas()).Msg("query")

	cursor := storage.Cursor(0)
	fetched := 0
	for fetched < candidateLimit {
		batch := min(batchSize, candidateLimit-fetched)
		newCursor, err := s.Sentences(expr, cursor, batch, h.Renderer.Render)
		if err != nil {
			return err
		}
		if cursor == newCursor {
			break // No more progress
		}
		fetched += batch
		cursor = newCursor
	}

	if fetched >= candidateLimit {
		h.Log.Warn().Int("limit", candidateLimit).Msg("candidate limit reached")
	}
	return nil
}

// Parse splits a prompt line into the leading labels and the filter
// expression.
func Parse(in string) ([]string, match.Expr, error) {
	var labels []string
	rest := strings.TrimSpace(in)
	for strings.HasPrefix(rest, labelPrefix) {
		label, tail, _ := strings.Cut(rest, " ")
		label = strings.TrimPrefix(label, labelPrefix)
		if label == "" {
			return nil, nil, errors.New("empty label")
		}
		labels = append(labels, label)
		rest = strings.TrimSpace(tail)
	}

	expr, err := match.Parse(rest)
	if err != nil {
		return nil, nil, err
	}
	return labels, expr, nil
}

func (h *Handler) completer(labels []string) func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return Complete(labels, in.GetWordBeforeCursor())
	}
}

// Complete suggests labels for a word starting with the label prefix and
// field paths otherwise.
func Complete(labels []string, word string) []prompt.Suggest {
	s := []prompt.Suggest{}

	if word == "" {
		return s
	}

	if strings.HasPrefix(word, labelPrefix) {
		for _, l := range labels {
			if strings.HasPrefix(labelPrefix+l, word) {
				s = append(s, prompt.Suggest{Text: labelPrefix + l, Description: "🔖 label"})
			}
		}
		return s
	}

	// only the field part of a condition is completed
	if strings.ContainsAny(word, "=~") {
		return s
	}
	return prompt.FilterHasPrefix(fieldPaths, word, true)
}
