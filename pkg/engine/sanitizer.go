package engine

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

var (
	// DefaultMaxInputSize is 4KB, far more than any spoken or typed turn.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "COMPASS_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = fmt.Errorf("%w: input exceeds maximum allowed size", domain.ErrInvalidInput)
	ErrInvalidUTF8   = fmt.Errorf("%w: input contains invalid UTF-8 sequences", domain.ErrInvalidInput)
)

// SanitizeInput cleans user input by enforcing a size limit,
// validating UTF-8, and stripping dangerous control characters.
// A limit of zero or less means the environment or default limit.
func SanitizeInput(input string, limit int) (string, error) {
	// 1. Enforce Size Limit
	if limit <= 0 {
		limit = MaxInputSizeFromEnv()
	}
	if len(input) > limit {
		// Rejected rather than truncated so a turn never acts on half a sentence.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	// 2. Validate UTF-8
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// 3. Strip Control Characters
	// Newline, tab and carriage return survive as whitespace.
	// ESC, NULL, BEL and friends would poison logs and TwiML.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxInputSizeFromEnv returns the limit set by COMPASS_MAX_INPUT_SIZE, or the default.
func MaxInputSizeFromEnv() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
