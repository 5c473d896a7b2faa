/*
Package observability turns engine hooks into Prometheus metrics and structured log lines.

Both are plain domain.Hooks values, so hosts combine them with Combine and pass
the result to the engine.
*/
package observability
