/*
Package ecoguia serves a scripted conversational guide to the nature reserves of
the Province of Buenos Aires, together with a name lookup over the reserve table.

The dialogue is a graph of typed nodes (menu, response, input, end). The engine
keeps no session: every step receives the current node id from the caller and
returns the next node, so any number of conversations can run concurrently over
the same read-only graph.

# Usage

	eng, err := ecoguia.New("bot.txt",
		ecoguia.WithRecordLoader(file.NewRecordLoader("reservas_unificadas.json")),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	payload, err := eng.StartConversation(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// The client picks option "1" on the start menu.
	payload, err = eng.Step(ctx, payload.NodeID, "1", "")

	// Name lookup: exact, then substring, then fuzzy; at most five records.
	for _, r := range eng.SearchReservations(ctx, "Otamendy") {
		fmt.Println(r["nombre"])
	}

# Errors

Step fails with errors matching domain.ErrInput (a required field is missing),
domain.ErrNotFound (unknown option or node) or domain.ErrConfiguration (the
dialogue itself is broken). Searches never fail.
*/
package ecoguia
