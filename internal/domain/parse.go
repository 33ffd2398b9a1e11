package domain

import (
	"strconv"
	"strings"
)

// token is a whitespace-delimited run of characters and its byte offset in
// the line it was read from.
type token struct {
	text  string
	start int
}

// tokenize splits a line on ASCII whitespace, keeping offsets so the label
// can be sliced out of the original line with its inner spacing intact.
func tokenize(line string) []token {
	var tokens []token
	start := -1
	for i := 0; i < len(line); i++ {
		if isSpace(line[i]) {
			if start >= 0 {
				tokens = append(tokens, token{text: line[start:i], start: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: line[start:], start: start})
	}
	return tokens
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsNoiseLine reports whether a trimmed line is made only of digits, like a
// page number or a footer counter.
func IsNoiseLine(line string) bool {
	return allDigits(line)
}

// leadingDigits returns the run of ASCII digits at the start of s.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i]
}

// parseCount parses a non-negative decimal count. Values that overflow int
// are rejected.
func parseCount(s string) (int, bool) {
	if !allDigits(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseLine reads a data row of the form
// "<label> <confirmed> <recovered> <deaths> [<active>] [...]".
// The label is every leading token without a digit and must not be empty.
// Active is read from the digits leading the fourth count token, so a
// footnote marker like "258*" still yields 258; it is 0 when there are none. It returns false when the line has any other shape.
func ParseLine(line string) (StateRecord, bool) {
	tokens := tokenize(line)

	n := 0
	for n < len(tokens) && !hasDigit(tokens[n].text) {
		n++
	}
	if n == 0 || len(tokens) < n+3 {
		return StateRecord{}, false
	}

	var counts [4]int
	for i := 0; i < 3; i++ {
		v, ok := parseCount(tokens[n+i].text)
		if !ok {
			return StateRecord{}, false
		}
		counts[i] = v
	}
	if len(tokens) > n+3 {
		if v, ok := parseCount(leadingDigits(tokens[n+3].text)); ok {
			counts[3] = v
		}
	}

	return StateRecord{
		State: strings.TrimSpace(line[:tokens[n].start]),
		Counts: Counts{
			Confirmed: counts[0],
			Recovered: counts[1],
			Deaths:    counts[2],
			Active:    counts[3],
		},
	}, true
}
