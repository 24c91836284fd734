// Package responses turns response keys and payloads into reply text.
//
// The engine only emits symbolic keys. Wording lives in a YAML catalog of
// text/template snippets, embedded by default and replaceable per deployment.
package responses

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/menu"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Fallback is spoken when a key has no template or its template fails.
const Fallback = "Sorry, I didn't get that. Could you say it again?"

// Renderer renders reply text. It is safe for concurrent use.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report missing keys.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New parses the embedded catalog, then each override catalog in order.
// Later catalogs replace keys of earlier ones.
func New(overrides [][]byte, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, data := range append([][]byte{defaultCatalog}, overrides...) {
		if err := r.load(data); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is New without overrides; it panics if the embedded catalog is broken.
func MustNew(opts ...Option) *Renderer {
	r, err := New(nil, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) load(data []byte) error {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse response catalog: %w", err)
	}
	for key, text := range raw {
		tmpl, err := template.New(key).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("failed to parse response %q: %w", key, err)
		}
		r.templates[key] = tmpl
	}
	return nil
}

// Has reports whether key has a template.
func (r *Renderer) Has(key string) bool {
	_, ok := r.templates[key]
	return ok
}

// Render returns the reply text for a turn output.
func (r *Renderer) Render(out domain.TurnOutput) string {
	tmpl, ok := r.templates[out.ResponseKey]
	if !ok {
		r.logger.Warn("no text for response key", "response_key", out.ResponseKey)
		return Fallback
	}

	data := map[string]any(out.Payload)
	if data == nil {
		data = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		r.logger.Error("failed to render response", "response_key", out.ResponseKey, "err", err)
		return Fallback
	}
	return strings.TrimSpace(buf.String())
}

var funcs = template.FuncMap{
	"str":      str,
	"list":     func(v any) string { return joinWith(strs(v), "or") },
	"all":      func(v any) string { return joinWith(strs(v), "and") },
	"numbered": numbered,
	"lines":    lines,
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func strs(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			out = append(out, str(e))
		}
		return out
	}
	return nil
}

// joinWith renders "a", "a or b" and "a, b or c".
func joinWith(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conj + " " + items[len(items)-1]
}

func numbered(v any) string {
	var b strings.Builder
	for i, s := range strs(v) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

// lines renders summary lines as a markdown list.
func lines(v any) string {
	items, _ := v.([]menu.SummaryLine)
	var b strings.Builder
	for _, l := range items {
		fmt.Fprintf(&b, "- %d x %s: %s\n", l.Quantity, l.Name, l.LineTotal)
	}
	return strings.TrimRight(b.String(), "\n")
}
