package envlines

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"envlist/internal/constants"
)

// ErrRead is matched by every error returned from Read.
var ErrRead = errors.New("failed to read env file")

// ErrInvalidUTF8 is wrapped by Read when the file is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ReadError reports a file that could not be read or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return e.Err.Error()
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}

// IsComment reports whether line starts with the comment marker.
func IsComment(line string) bool {
	return strings.HasPrefix(line, constants.CommentPrefix)
}

// Filter splits text on "\n" and returns the lines that are not comments, in order.
// The result is never nil.
func Filter(text string) []string {
	lines := []string{}
	if text == "" {
		return lines
	}
	for _, line := range strings.Split(text, "\n") {
		if !IsComment(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// FilterBlank returns lines without the empty ones.
func FilterBlank(lines []string) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return kept
}

// Read reads the whole file at path and returns its non-comment lines.
func Read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: path, Err: fmt.Errorf("%s: %w", path, ErrInvalidUTF8)}
	}
	return Filter(string(data)), nil
}
