package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/revelaction/conllu/field"
	"github.com/revelaction/conllu/sentence"
)

var (
	ErrEmptyInput           = errors.New("can't create TokenList, no data sent to constructor")
	ErrInvalidLineFormat    = errors.New("invalid line format, line must contain either tabs or two spaces")
	ErrInvalidCommentFormat = errors.New("invalid comment format, comment must start with '#'")
)

// FieldError reports a column whose parser failed.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("failed parsing field '%s': %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var columnSep = regexp.MustCompile(`\t| {2,}`)

// ParseSentence parses one sentence block.
func ParseSentence(data string, cfg Config) (*sentence.TokenList, error) {
	tokens, md, err := ParseTokenAndMetadata(data, cfg)
	if err != nil {
		return nil, err
	}
	return sentence.NewTokenList(tokens, md), nil
}

// ParseTokenAndMetadata parses the lines of one sentence block: comment
// lines into metadata, all other non blank lines into tokens.
func ParseTokenAndMetadata(data string, cfg Config) ([]*sentence.Token, *sentence.Metadata, error) {
	if data == "" {
		return nil, nil, ErrEmptyInput
	}

	fields := cfg.fields()
	fieldParsers := cfg.fieldParsers(fields)
	metadataParsers := cfg.metadataParsers()

	var tokens []*sentence.Token
	md := sentence.NewMetadata()

	for n, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			pairs, err := ParseCommentLine(line, metadataParsers)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			for _, p := range pairs {
				md.Set(p.Key, p.Value)
			}
			continue
		}

		tok, err := parseLine(line, fields, fieldParsers)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		tokens = append(tokens, tok)
	}

	return tokens, md, nil
}

// ParseLine parses one token line. A nil parsers map means the defaults.
func ParseLine(line string, fields []string, parsers map[string]FieldParser) (*sentence.Token, error) {
	cfg := Config{Fields: fields, FieldParsers: parsers}
	return parseLine(line, cfg.fields(), cfg.fieldParsers(cfg.fields()))
}

func parseLine(line string, fields []string, parsers map[string]FieldParser) (*sentence.Token, error) {
	columns := columnSep.Split(line, -1)
	if len(columns) == 1 {
		return nil, ErrInvalidLineFormat
	}

	// Columns beyond the declared fields are ignored, missing trailing
	// columns are left out of the token.
	n := min(len(fields), len(columns))
	values := make([]sentence.Field, 0, n)
	for i, name := range fields[:n] {
		p, ok := parsers[name]
		if !ok {
			values = append(values, sentence.Field{Name: name, Value: field.String(columns[i])})
			continue
		}

		v, err := p(columns, i)
		if err != nil {
			return nil, &FieldError{Field: name, Err: err}
		}
		values = append(values, sentence.Field{Name: name, Value: v})
	}

	return sentence.NewToken(values...), nil
}

// ParseCommentLine parses a "# key = value" line into metadata entries. A
// comment without value is dropped unless a parser (or the fallback
// parser) keeps it.
func ParseCommentLine(line string, parsers map[string]MetadataParser) ([]sentence.Pair, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "#") {
		return nil, ErrInvalidCommentFormat
	}

	if parsers == nil {
		parsers = DefaultMetadataParsers()
	}

	key, value := ParsePairValue(line[1:])

	p, ok := parsers[key]
	if !ok {
		p, ok = parsers[FallbackKey]
	}
	if ok {
		pairs, err := p(key, value)
		if err != nil {
			return nil, fmt.Errorf("metadata '%s': %w", key, err)
		}
		if len(pairs) > 0 {
			return pairs, nil
		}
	}

	if key == "" || value == "" {
		return nil, nil
	}
	return []sentence.Pair{{Key: key, Value: value}}, nil
}

// ParsePairValue splits "key = value" on the first "=". Both parts are
// trimmed; value is "" when there is no "=".
func ParsePairValue(s string) (key, value string) {
	key, value, _ = strings.Cut(s, "=")
	return strings.TrimSpace(key), strings.TrimSpace(value)
}

// ColumnsFromBlock returns the lower cased column names of a
// global.columns comment on the first line of block.
func ColumnsFromBlock(block string, parsers map[string]MetadataParser) ([]string, error) {
	first, _, _ := strings.Cut(block, "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, "#") {
		return nil, nil
	}

	pairs, err := ParseCommentLine(first, Config{MetadataParsers: parsers}.metadataParsers())
	if err != nil {
		return nil, err
	}

	for _, p := range pairs {
		if p.Key != ColumnsKey {
			continue
		}
		s, ok := p.Value.(string)
		if !ok || s == "" {
			return nil, nil
		}
		return strings.Fields(strings.ToLower(s)), nil
	}
	return nil, nil
}
