package middleware

import (
	"context"
	"regexp"

	"github.com/arushahmd/compass-voice/pkg/domain"
	"github.com/arushahmd/compass-voice/pkg/ports"
)

// DefaultPIIPatterns mask card-like digit runs and phone numbers that callers
// read out while paying.
var DefaultPIIPatterns = []string{
	`\b\d(?:[ -]?\d){12,18}\b`,
	`(?:\+?\d{1,2}[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}\b`,
}

const mask = "***"

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks text matching the patterns
// in the persisted copy of the last user utterance.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	// 1. Clone to avoid side effects on the in-memory session used by the engine.
	cloned := sess.Clone()

	// 2. Mask PII
	cloned.Context.LastUserText = m.maskText(cloned.Context.LastUserText)

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) maskText(text string) string {
	for _, p := range m.patterns {
		text = p.ReplaceAllString(text, mask)
	}
	return text
}
