package raft

// Events are the only way anything reaches node state: RPC arrivals, RPC
// responses, timer fires, and command submissions all enter the single
// event loop one at a time.
type event interface{}

type requestVoteEvent struct {
	req  *RequestVoteRequest
	resp chan *RequestVoteResponse
}

type appendEntriesEvent struct {
	req  *AppendEntriesRequest
	resp chan *AppendEntriesResponse
}

// voteReplyEvent re-enters the loop when a peer answers a RequestVote.
// term is the term the vote was solicited in; replies from older
// candidacies are ignored.
type voteReplyEvent struct {
	from uint64
	term uint64
	resp *RequestVoteResponse
}

// appendReplyEvent re-enters the loop when a peer answers an
// AppendEntries. prevIndex and count echo what was sent so the leader can
// advance matchIndex without re-deriving it from mutable state.
type appendReplyEvent struct {
	peer      uint64
	term      uint64
	prevIndex uint64
	count     int
	resp      *AppendEntriesResponse
}

// Timer events carry the epoch current when the timer was armed; the loop
// drops events whose epoch is stale, so a cancelled timer firing late is
// a no-op.
type electionTimeoutEvent struct {
	epoch uint64
}

type heartbeatTickEvent struct {
	epoch uint64
}

type submitEvent struct {
	command []byte
	resp    chan submitResult
}

type submitResult struct {
	index uint64
	term  uint64
	err   error
}

type statusEvent struct {
	resp chan Status
}
