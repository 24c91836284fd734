package engine

import (
	"strings"
	"testing"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize), 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "two chicken tacos", "two chicken tacos"},
		{"Safe Controls", "fries\nand\tsalad", "fries\nand\tsalad"},
		{"ANSI Code", "\x1b[31myes\x1b[0m", "[31myes[0m"},
		{"Null Byte", "coke\x00please", "cokeplease"},
		{"Bell", "done\x07", "done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("12345678901", 0)
	assert.Error(t, err, "input over the env limit")

	_, err = SanitizeInput("12345", 0)
	assert.NoError(t, err)

	// An explicit limit wins over the environment.
	_, err = SanitizeInput("12345678901", 20)
	assert.NoError(t, err)
}

func TestSanitizeInput_EnvIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "lots")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSizeFromEnv())
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98", 0)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
