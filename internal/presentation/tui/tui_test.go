package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "ordering agent 1.2.3")
}

func TestNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Zero(t, Width(&buf))
	assert.Equal(t, "> ", Prompt(&buf, "> "), "no styling when not a terminal")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer(60)
	out, err := render("- 2 x Chocolate Brownie: $9.98")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Chocolate Brownie"))
}
