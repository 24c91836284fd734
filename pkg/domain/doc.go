/*
Package domain contains the core domain models of the Compass ordering engine.

It defines the vocabulary shared by every layer of a turn: what the user meant
(Intent), where the conversation is (ConversationState), what is being built
(Context, Cart) and what a handler decided (HandlerResult, Command). This package
is kept pure and free of I/O or persistence concerns.

# Key Entities

  - Intent: the linguistic classification of one utterance, produced fresh each turn.
  - ConversationState: the single active phase of a session.
  - Context: transient scratch space for the item under construction.
  - Session: the source of truth across turns (state, context, cart, bookkeeping).
  - Command: a sealed union describing a cart mutation, applied only by the engine.
*/
package domain
