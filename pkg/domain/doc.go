/*
Package domain contains the core models of the EcoGuía dialogue engine.

It defines the dialogue graph entities, the client-facing payload, the error
taxonomy and the reservation record. The package is free of I/O and
persistence concerns.

# Key Entities

  - Node: a step of the conversation (menu, response, input, end or pass-through).
  - Option: a labeled choice pointing to another node.
  - Definition: the raw set of nodes plus the designated start node.
  - NodePayload: what a client renders for a node.
  - Record: a reservation row searched by its "nombre" field.
*/
package domain
