package graph

import (
	"strings"
	"testing"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/router"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	out := GenerateMermaid(router.New(), nil)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	for _, state := range domain.States {
		assert.Contains(t, out, sanitizeMermaidID(string(state))+"(\""+string(state)+"\")")
	}
	assert.Contains(t, out, "h_add_item[[\"add_item\"]]")
	assert.Contains(t, out, "h_payment[[\"payment\"]]")
	assert.NotContains(t, out, "classDef current")
}

func TestGenerateMermaid_IdleRoutes(t *testing.T) {
	out := GenerateMermaid(router.New(), nil)

	// ADD_ITEM from IDLE goes to the add-item handler, CONFIRM does not leave IDLE.
	routes := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "idle -- ") {
			continue
		}
		parts := strings.Split(line, "\"")
		target := strings.TrimSpace(strings.TrimPrefix(parts[2], " -->"))
		for _, intent := range strings.Split(parts[1], "<br/>") {
			routes[intent] = target
		}
	}
	assert.Equal(t, "h_add_item", routes["ADD_ITEM"])
	assert.Equal(t, "h_start_order", routes["END_ADDING"])
	assert.NotContains(t, routes, "CONFIRM")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := GenerateMermaid(router.New(), &Overlay{CurrentState: domain.StateWaitingForSide})

	assert.Contains(t, out, "classDef current")
	assert.Contains(t, out, "class waiting_for_side current;")
}
