/*
Package ports defines the driven ports (interfaces) of the EcoGuía engine.

These interfaces decouple the core from the sources of its data and from
optional infrastructure.

# Key Interfaces

  - DefinitionLoader: loads the dialogue definition (file, Loam, memory).
  - RecordLoader: loads the unified reservation table.
  - Graph: read-only lookup over the loaded dialogue nodes.
  - SearchCache: optional memoization of reservation lookups (e.g. Redis).
*/
package ports
