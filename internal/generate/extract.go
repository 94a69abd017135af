package generate

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSONArray pulls a JSON array out of free-form model text. Models
// routinely wrap their JSON in prose or markdown fences, so only the span
// between the first '[' and the last ']' (inclusive) is considered. The
// span is cleaned of control characters and non-breaking spaces before
// parsing.
func ExtractJSONArray(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || start >= end {
		return "", &ParseError{Raw: raw, Err: errors.New("no bracketed span")}
	}

	cleaned := stripControls(raw[start : end+1])
	if len(cleaned) < 2 {
		return "", &ParseError{Raw: raw, Err: errors.New("bracketed span empty after cleaning")}
	}

	if !json.Valid([]byte(cleaned)) {
		return "", &ParseError{Raw: raw, Err: errors.New("bracketed span is not valid JSON")}
	}
	return cleaned, nil
}

// stripControls removes C0 and C1 control codes (tab, newline, carriage
// return, backspace, form feed among them) and non-breaking spaces.
func stripControls(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20:
			return -1
		case r == 0x7f:
			return -1
		case r >= 0x80 && r <= 0x9f:
			return -1
		case r == ' ':
			return -1
		}
		return r
	}, s)
}
