package parser

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

// Segmenter splits a CoNLL-U stream into sentence blocks. Blank (or
// whitespace only) lines end a block; runs of blank lines never produce
// empty blocks. It reads the stream one line at a time and is used like a
// bufio.Scanner:
//
//	seg := parser.NewSegmenter(r)
//	for seg.Scan() {
//		block := seg.Text()
//	}
//	if err := seg.Err(); err != nil {
//		...
//	}
type Segmenter struct {
	r     *bufio.Reader
	buf   strings.Builder
	block string
	err   error
	done  bool
}

func NewSegmenter(r io.Reader) *Segmenter {
	return &Segmenter{r: bufio.NewReader(r)}
}

// Scan advances to the next block.
func (s *Segmenter) Scan() bool {
	for !s.done {
		line, err := s.r.ReadString('\n')
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.err = err
				return false
			}
		}

		if strings.TrimSpace(line) == "" {
			if s.flush() {
				return true
			}
			continue
		}
		s.buf.WriteString(line)
	}

	return s.flush()
}

func (s *Segmenter) flush() bool {
	if s.buf.Len() == 0 {
		return false
	}
	s.block = strings.TrimRightFunc(s.buf.String(), unicode.IsSpace)
	s.buf.Reset()
	return true
}

// Text returns the current block without its trailing line break.
func (s *Segmenter) Text() string {
	return s.block
}

// Err returns the first non EOF read error.
func (s *Segmenter) Err() error {
	return s.err
}

// PeekColumns reads the first sentence block of r and returns the columns
// declared by a global.columns comment on its first line, nil when there
// is none. The returned reader replays the consumed bytes followed by the
// rest of r, so r need not be seekable.
func PeekColumns(r io.Reader, parsers map[string]MetadataParser) ([]string, io.Reader, error) {
	br := bufio.NewReader(r)
	var consumed bytes.Buffer
	var block strings.Builder

	for {
		line, err := br.ReadString('\n')
		consumed.WriteString(line)
		if strings.TrimSpace(line) == "" {
			if block.Len() > 0 {
				break
			}
		} else {
			block.WriteString(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
	}

	replay := io.MultiReader(bytes.NewReader(consumed.Bytes()), br)
	cols, err := ColumnsFromBlock(block.String(), parsers)
	if err != nil {
		return nil, nil, err
	}
	return cols, replay, nil
}
