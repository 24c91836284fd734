package domain

// Confirmation records what a yes/no answer will apply to.
type Confirmation struct {
	Type       string `json:"type"`
	CartItemID string `json:"cart_item_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
	ItemName   string `json:"item_name,omitempty"`
}

// ConfirmRemoveItem is the Confirmation type used by the remove flow.
const ConfirmRemoveItem = "remove_item"

// Context is the transient scratch space for the item currently under construction.
//
// Group indexes only move forward during one add-item episode; Reset is the
// only way back to zero.
type Context struct {
	CurrentItemID   string `json:"current_item_id,omitempty"`
	CurrentItemName string `json:"current_item_name,omitempty"`
	CandidateItemID string `json:"candidate_item_id,omitempty"`

	SelectedVariantID string `json:"selected_variant_id,omitempty"`

	CurrentSideGroupIndex int                 `json:"current_side_group_index"`
	SelectedSideGroups    map[string][]string `json:"selected_side_groups"`

	CurrentModifierGroupIndex int                 `json:"current_modifier_group_index"`
	SelectedModifierGroups    map[string][]string `json:"selected_modifier_groups"`

	// SkippedModifierGroups is informational; SelectedModifierGroups stays authoritative.
	SkippedModifierGroups []string `json:"skipped_modifier_groups,omitempty"`

	Quantity      int    `json:"quantity,omitempty"`
	PendingAction string `json:"pending_action,omitempty"`

	AwaitingConfirmationFor *Confirmation `json:"awaiting_confirmation_for,omitempty"`

	// LastUserText is the raw text of the turn being processed.
	LastUserText string `json:"last_user_text,omitempty"`
}

// NewContext returns an empty context with initialized selection maps.
func NewContext() Context {
	return Context{
		SelectedSideGroups:     make(map[string][]string),
		SelectedModifierGroups: make(map[string][]string),
	}
}

// Reset clears everything related to the current task.
func (c *Context) Reset() {
	lastText := c.LastUserText
	*c = NewContext()
	c.LastUserText = lastText
}

// BeginItem starts a fresh add-item episode for the given menu item.
func (c *Context) BeginItem(itemID, itemName string) {
	c.Reset()
	c.CurrentItemID = itemID
	c.CurrentItemName = itemName
	c.PendingAction = "add"
}

// SelectSides commits choices for a side group.
func (c *Context) SelectSides(groupID string, choiceIDs ...string) {
	if c.SelectedSideGroups == nil {
		c.SelectedSideGroups = make(map[string][]string)
	}
	c.SelectedSideGroups[groupID] = append(c.SelectedSideGroups[groupID], choiceIDs...)
}

// SelectModifiers commits choices for a modifier group.
func (c *Context) SelectModifiers(groupID string, choiceIDs ...string) {
	if c.SelectedModifierGroups == nil {
		c.SelectedModifierGroups = make(map[string][]string)
	}
	c.SelectedModifierGroups[groupID] = append(c.SelectedModifierGroups[groupID], choiceIDs...)
}

// IsZero reports whether the context holds no task data.
func (c Context) IsZero() bool {
	return c.CurrentItemID == "" &&
		c.CurrentItemName == "" &&
		c.CandidateItemID == "" &&
		c.SelectedVariantID == "" &&
		c.CurrentSideGroupIndex == 0 &&
		c.CurrentModifierGroupIndex == 0 &&
		len(c.SelectedSideGroups) == 0 &&
		len(c.SelectedModifierGroups) == 0 &&
		len(c.SkippedModifierGroups) == 0 &&
		c.Quantity == 0 &&
		c.PendingAction == "" &&
		c.AwaitingConfirmationFor == nil
}

// Clone returns a deep copy of the context.
func (c Context) Clone() Context {
	out := c
	out.SelectedSideGroups = copySelections(c.SelectedSideGroups)
	out.SelectedModifierGroups = copySelections(c.SelectedModifierGroups)
	if c.SkippedModifierGroups != nil {
		out.SkippedModifierGroups = append([]string(nil), c.SkippedModifierGroups...)
	}
	if c.AwaitingConfirmationFor != nil {
		conf := *c.AwaitingConfirmationFor
		out.AwaitingConfirmationFor = &conf
	}
	return out
}

func copySelections(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}
