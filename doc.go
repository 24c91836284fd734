/*
Package compass is a deterministic, turn-based ordering agent for restaurants.

Each call to Agent.Handle takes one user utterance and runs exactly one turn:
the text is classified with ordered pattern tables, guarded by a flow-control
policy, routed by conversation state and handled by a slot-filling handler
that collects the item, its sides, modifiers, size and quantity before a
single cart command is applied. The engine never plans ahead and never calls
a model; the same session and text always yield the same reply.

# Architecture

The core packages know nothing about transports or storage:

  - pkg/nlu, pkg/matcher and pkg/menu turn text into intents and menu matches.
  - pkg/flow and pkg/router decide whether an intent may act in a state.
  - pkg/handlers produce side-effect-free results; pkg/engine commits them.

Around them sit the session manager (pkg/session), the session stores
(memory, file and Redis), reply rendering, an HTTP and voice webhook server,
an MCP tool server and the compass CLI.

# Usage

	loader := file.NewMenuLoader("menu.yaml")
	agent, err := compass.New(ctx, loader)
	if err != nil {
		log.Fatal(err)
	}

	reply, err := agent.Handle(ctx, "caller-42", "two chicken tacos")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Text) // Which Side would you like with your Chicken Taco? ...

Sessions default to an in-memory store. Use WithStore to persist them and
WithLocker to serialize turns across replicas.
*/
package compass
