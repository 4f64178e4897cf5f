// Package lines holds the input of a parse run as an ordered sequence of
// non-blank, numbered lines consumed strictly front to back.
package lines

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/yurifrl/secstmt/pkg/errs"
)

// Line is one non-blank input line and its 1-based number in the source.
type Line struct {
	Number int
	Text   string
}

// Buffer is a single-owner cursor over the lines of one input. It is not
// safe for concurrent use and cannot be rewound.
type Buffer struct {
	lines []Line
	pos   int
}

// New numbers texts from 1 and drops the blank ones. Trailing line
// terminators and surrounding whitespace are removed.
func New(texts []string) *Buffer {
	b := &Buffer{lines: make([]Line, 0, len(texts))}
	for i, text := range texts {
		text = strings.TrimSpace(strings.TrimRight(text, "\r\n"))
		if text == "" {
			continue
		}
		b.lines = append(b.lines, Line{Number: i + 1, Text: text})
	}
	return b
}

// FromText splits newline-delimited data into a Buffer.
func FromText(data []byte) *Buffer {
	var texts []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	if scanner.Err() != nil {
		// Only a line above the scanner limit gets here; fall back to a plain split.
		texts = strings.Split(string(data), "\n")
	}
	return New(texts)
}

// Peek returns the next line without consuming it.
func (b *Buffer) Peek() (Line, bool) {
	if b.Exhausted() {
		return Line{}, false
	}
	return b.lines[b.pos], true
}

// Consume removes and returns the next line. It fails with
// errs.UnexpectedEndError once the buffer is exhausted.
func (b *Buffer) Consume() (Line, error) {
	if b.Exhausted() {
		return Line{}, &errs.UnexpectedEndError{At: b.LastLine()}
	}
	line := b.lines[b.pos]
	b.pos++
	return line, nil
}

func (b *Buffer) Exhausted() bool {
	return b.pos >= len(b.lines)
}

// Len is the number of lines not yet consumed.
func (b *Buffer) Len() int {
	return len(b.lines) - b.pos
}

// LastLine is the source number of the final non-blank line, or 0 when the
// input had none.
func (b *Buffer) LastLine() int {
	if len(b.lines) == 0 {
		return 0
	}
	return b.lines[len(b.lines)-1].Number
}
