package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every typed error below matches exactly one of them with errors.Is.
var (
	// ErrConfiguration marks a structurally broken dialogue definition.
	ErrConfiguration = errors.New("configuration error")
	// ErrInput marks a request missing a field the current node requires.
	ErrInput = errors.New("input error")
	// ErrNotFound marks a reference to an option or node that does not exist.
	ErrNotFound = errors.New("not found")
)

// ConfigurationError is returned when the definition cannot support a transition.
type ConfigurationError struct {
	NodeID string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.NodeID == "" {
		return e.Reason
	}
	return fmt.Sprintf("node '%s': %s", e.NodeID, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// InputError is returned when the caller omitted a required field.
type InputError struct {
	NodeID string
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("missing '%s': %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("node '%s': missing '%s': %s", e.NodeID, e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool { return target == ErrInput }

// NotFoundError is returned when an option or a node id cannot be resolved.
type NotFoundError struct {
	NodeID string // node where the lookup happened, empty for top-level lookups
	Ref    string // the id that could not be resolved
	What   string // "node" or "option"
}

func (e *NotFoundError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("%s '%s' not found", e.What, e.Ref)
	}
	return fmt.Sprintf("%s '%s' not found in node '%s'", e.What, e.Ref, e.NodeID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// GraphError aggregates every problem found while loading a definition.
type GraphError struct {
	Problems []string
}

func (e *GraphError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid dialogue definition: " + e.Problems[0]
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid dialogue definition, %d problems:\n", len(e.Problems))
	for i, p := range e.Problems {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, p)
	}
	return sb.String()
}

func (e *GraphError) Is(target error) bool { return target == ErrConfiguration }

// Add records a problem.
func (e *GraphError) Add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// ErrOrNil returns the aggregate only if it holds problems.
func (e *GraphError) ErrOrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
