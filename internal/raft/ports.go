package raft

import "context"

// Transport delivers the two consensus RPCs to a named peer. Connection
// management and retries are the implementation's concern; the node treats
// delivery as at-least-once, unordered, and possibly lossy. Calls are made
// from per-peer dispatch goroutines, never from the event loop itself, so a
// slow peer cannot stall event processing.
type Transport interface {
	RequestVote(ctx context.Context, to uint64, req *RequestVoteRequest) (*RequestVoteResponse, error)
	AppendEntries(ctx context.Context, to uint64, req *AppendEntriesRequest) (*AppendEntriesResponse, error)
}

// StateMachine is the broker-side apply hook. Apply must be deterministic
// in (index, command) and is invoked sequentially in strict index order,
// exactly once per index per process lifetime. After a restart the node
// replays committed entries from index 1, so implementations must treat
// re-apply of an index they already hold as a no-op.
type StateMachine interface {
	Apply(index uint64, command []byte) error
}

// Storage persists hard state and log mutations. Every method must make
// its effect durable (or fail) before returning; the node never
// acknowledges an RPC whose outcome references unpersisted state. A
// returned error is fatal to the node.
type Storage interface {
	// SaveHardState persists currentTerm and votedFor (None when unset).
	SaveHardState(term, votedFor uint64) error
	// AppendEntries persists new log entries in order.
	AppendEntries(entries []Entry) error
	// TruncateFrom durably removes the entry at index and everything after it.
	TruncateFrom(index uint64) error
}
