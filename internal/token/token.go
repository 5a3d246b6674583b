// Package token turns raw assembly source lines into the sequence of
// comment- and comma-stripped tokens the two passes dispatch on.
package token

import (
	"bufio"
	"io"
	"strings"
)

// Line is one physical source line reduced to its non-empty tokens,
// with any trailing '#' comment and commas already removed.
type Line struct {
	Number int // 1-based, matches the source file
	Tokens []string
}

// Scan reads every line from r and tokenizes it. Empty or
// comment-only lines are kept (with a nil Tokens slice) so callers can
// still track line numbers the way the first and second pass require.
func Scan(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []Line
	n := 0
	for scanner.Scan() {
		n++
		lines = append(lines, Line{
			Number: n,
			Tokens: tokenize(scanner.Text()),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// tokenize splits a line on whitespace, drops everything from a "#"
// token onward, and strips commas out of the tokens that remain,
// dropping any token that a comma strip leaves empty.
func tokenize(line string) []string {
	fields := strings.Fields(line)

	for i, tok := range fields {
		if tok == "#" {
			fields = fields[:i]
			break
		}
	}

	if len(fields) == 0 {
		return nil
	}

	var out []string
	for _, tok := range fields {
		if tok = strings.ReplaceAll(tok, ",", ""); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
