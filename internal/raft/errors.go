package raft

import "errors"

var (
	// ErrNotLeader rejects a command submitted to a non-leader. Callers
	// should redirect to the leader reported by Status.
	ErrNotLeader = errors.New("not leader")

	// ErrShuttingDown rejects work arriving after Stop, or after a fatal
	// storage failure halted the event loop.
	ErrShuttingDown = errors.New("shutting down")
)
