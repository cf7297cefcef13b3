package mesos

import (
	"fmt"
	"strings"
)

// NotFoundError indicates that a filter matched no entity of the given kind.
type NotFoundError struct {
	Kind   string // "task" or "agent"
	Filter string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find a %s containing %q", e.Kind, e.Filter)
}

// AmbiguousError indicates that a filter matched more than one entity. The
// message enumerates every candidate id so the operator can narrow the filter.
type AmbiguousError struct {
	Kind    string
	Filter  string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "there are multiple %ss matching %q; please choose one:", e.Kind, e.Filter)
	for _, id := range e.Matches {
		b.WriteString("\n\t")
		b.WriteString(id)
	}
	return b.String()
}

// ExecutorNotFoundError indicates that no executor on the task's agent
// references the task id.
type ExecutorNotFoundError struct {
	TaskID string
}

func (e *ExecutorNotFoundError) Error() string {
	return fmt.Sprintf("could not find an executor for task %q", e.TaskID)
}

// UnreachableError wraps a connection-level failure contacting a cluster node.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("node at %s is unreachable: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
