package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize bounds free text in bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize when set to a positive integer.
	EnvMaxInputSize = "ECOGUIA_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput validates free text typed by a user (chat answers) and strips
// control characters other than newline, tab and carriage return. Oversized or
// malformed text is rejected, never truncated.
func SanitizeInput(input string) (string, error) {
	if err := checkText(input); err != nil {
		return "", err
	}
	return stripControl(input), nil
}

// SanitizeQuery is the lenient variant used on search paths: text that
// SanitizeInput would reject becomes the empty query, which matches nothing.
// The second result reports whether the query was discarded.
func SanitizeQuery(input string) (string, bool) {
	if checkText(input) != nil {
		return "", true
	}
	return stripControl(input), false
}

func checkText(input string) error {
	if limit := maxInputSize(); len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	return nil
}

func stripControl(input string) string {
	i := strings.IndexFunc(input, unsafeControl)
	if i < 0 {
		return input
	}
	var b strings.Builder
	b.Grow(len(input))
	b.WriteString(input[:i])
	for _, r := range input[i:] {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unsafeControl(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return false
	}
	return unicode.IsControl(r)
}

func maxInputSize() int {
	if v := os.Getenv(EnvMaxInputSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxInputSize
}
