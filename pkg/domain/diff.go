package domain

import (
	"encoding/json"
	"reflect"
)

// SessionDiff represents the changes one turn made to a session.
// It is designed to be serialized to JSON for clients and debug logs.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	State *ConversationState `json:"conversation_state,omitempty"`

	// Context contains only changed, added or cleared fields, keyed by JSON name.
	// Cleared fields are present with a nil value.
	Context map[string]any `json:"context,omitempty"`

	Cart *CartDelta `json:"cart,omitempty"`
}

// CartDelta lists cart lines added and removed between two snapshots.
type CartDelta struct {
	Added   []CartItem `json:"added,omitempty"`
	Removed []string   `json:"removed,omitempty"`
}

// Diff calculates the difference between oldSession and newSession.
// If oldSession is nil, the diff represents the whole newSession.
// It returns nil when nothing changed.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}

	diff := &SessionDiff{SessionID: newSession.SessionID}

	if oldSession == nil || oldSession.State != newSession.State {
		state := newSession.State
		diff.State = &state
	}

	var oldCtx *Context
	var oldCart Cart
	if oldSession != nil {
		oldCtx = &oldSession.Context
		oldCart = oldSession.Cart
	}
	diff.Context = diffContext(oldCtx, &newSession.Context)
	diff.Cart = diffCart(oldCart, newSession.Cart)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.State == nil && len(d.Context) == 0 && d.Cart == nil
}

func diffContext(old, new *Context) map[string]any {
	newFields := contextFields(new)
	delta := make(map[string]any)

	if old == nil {
		for k, v := range newFields {
			delta[k] = v
		}
	} else {
		oldFields := contextFields(old)
		for k, newVal := range newFields {
			if oldVal, exists := oldFields[k]; !exists || !reflect.DeepEqual(oldVal, newVal) {
				delta[k] = newVal
			}
		}
		for k := range oldFields {
			if _, exists := newFields[k]; !exists {
				delta[k] = nil
			}
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// contextFields flattens a context to its JSON field map, dropping zero values.
func contextFields(c *Context) map[string]any {
	data, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	for k, v := range fields {
		switch val := v.(type) {
		case map[string]any:
			if len(val) == 0 {
				delete(fields, k)
			}
		case float64:
			if val == 0 {
				delete(fields, k)
			}
		case nil:
			delete(fields, k)
		}
	}
	delete(fields, "last_user_text")
	return fields
}

func diffCart(old, new Cart) *CartDelta {
	delta := &CartDelta{}
	for _, line := range new.Lines {
		if _, ok := old.Get(line.CartItemID); !ok {
			delta.Added = append(delta.Added, line)
		}
	}
	for _, line := range old.Lines {
		if _, ok := new.Get(line.CartItemID); !ok {
			delta.Removed = append(delta.Removed, line.CartItemID)
		}
	}
	if len(delta.Added) == 0 && len(delta.Removed) == 0 {
		return nil
	}
	return delta
}
