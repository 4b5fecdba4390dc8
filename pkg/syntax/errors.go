package syntax

import "fmt"

// ParseError reports a source file the provider could not parse.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Excerpt string // source line at Line, without its line break
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: parse error: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: parse error: %s", e.Path, e.Message)
}
