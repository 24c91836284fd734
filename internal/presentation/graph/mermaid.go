// Package graph renders the conversation routing table as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/router"
)

// Overlay marks session data on the chart.
type Overlay struct {
	CurrentState domain.ConversationState
}

// GenerateMermaid produces a Mermaid flowchart of which handler each state
// dispatches to, with the accepted intents as edge labels.
// States are drawn as (Rounded) nodes and handlers as [[Subroutine]] nodes.
func GenerateMermaid(r *router.Router, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	handlers := make(map[domain.HandlerName]bool)
	for _, state := range domain.States {
		safeState := sanitizeMermaidID(string(state))
		sb.WriteString(fmt.Sprintf("    %s(\"%s\")\n", safeState, state))

		// Group intents by handler, keeping first-seen order.
		var order []domain.HandlerName
		byHandler := make(map[domain.HandlerName][]string)
		for _, intent := range domain.Intents {
			route := r.Route(state, intent)
			if !route.Allowed {
				continue
			}
			if _, seen := byHandler[route.Handler]; !seen {
				order = append(order, route.Handler)
			}
			byHandler[route.Handler] = append(byHandler[route.Handler], string(intent))
		}

		for _, h := range order {
			handlers[h] = true
			label := strings.Join(byHandler[h], "<br/>")
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> h_%s\n", safeState, label, sanitizeMermaidID(string(h))))
		}
	}

	sb.WriteString("\n")
	for _, h := range domain.Handlers {
		if handlers[h] {
			sb.WriteString(fmt.Sprintf("    h_%s[[\"%s\"]]\n", sanitizeMermaidID(string(h)), h))
		}
	}

	if overlay != nil && overlay.CurrentState != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(string(overlay.CurrentState))))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.ToLower(s)
}
