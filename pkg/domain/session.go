package domain

import "time"

// Session is the single source of truth for one external conversation.
type Session struct {
	SessionID       string            `json:"session_id"`
	RestaurantID    string            `json:"restaurant_id"`
	State           ConversationState `json:"conversation_state"`
	Context         Context           `json:"conversation_context"`
	Cart            Cart              `json:"cart"`
	TurnCount       int               `json:"turn_count"`
	LastIntent      Intent            `json:"last_intent,omitempty"`
	LastResponseKey string            `json:"last_response_key,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewSession creates a session in the IDLE state with an empty cart.
func NewSession(sessionID, restaurantID string) *Session {
	return &Session{
		SessionID:    sessionID,
		RestaurantID: restaurantID,
		State:        StateIdle,
		Context:      NewContext(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Context = s.Context.Clone()
	out.Cart = s.Cart.Clone()
	return &out
}

// Normalize repairs zero values after decoding (nil maps, empty state).
func (s *Session) Normalize() {
	if s.State == "" {
		s.State = StateIdle
	}
	if s.Context.SelectedSideGroups == nil {
		s.Context.SelectedSideGroups = make(map[string][]string)
	}
	if s.Context.SelectedModifierGroups == nil {
		s.Context.SelectedModifierGroups = make(map[string][]string)
	}
}
