/*
Package runner drives an interactive EcoGuía conversation over a pair of streams.

The runner owns the loop only: it asks the engine for the start node, hands
each payload to an IOHandler, reads the user's answer and resolves the next
node. The engine itself stays stateless; the current node id is the only
state, and it lives in the loop.

# Key Components

  - Runner: the conversation loop, stopped by an end node, "exit", EOF or an OS signal.
  - IOHandler: decouples how payloads are shown and answers are read.
  - TextHandler: numbered options and a "> " prompt, for terminals.
  - JSONHandler: one JSON document per line, for scripts and pipes.
  - SanitizeInput and SanitizeQuery: the size and control-character policy; the HTTP and MCP adapters use the lenient SanitizeQuery.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithSearch(true),
	)

	if _, err := r.Run(ctx, engine); err != nil {
		log.Fatal(err)
	}
*/
package runner
