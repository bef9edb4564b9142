package raft

// Role is the node's position in the consensus protocol.
type Role int

const (
	Follower Role = iota
	Candidate
	Leader
)

var roleName = map[Role]string{
	Follower:  "follower",
	Candidate: "candidate",
	Leader:    "leader",
}

func (r Role) String() string { return roleName[r] }

// Entry is a single replicated log entry. Index starts at 1 and is
// contiguous; two entries with equal index and term hold the same command.
type Entry struct {
	Index   uint64
	Term    uint64
	Command []byte
}

// None marks an absent node id; valid node ids are positive.
const None uint64 = 0

type RequestVoteRequest struct {
	Term         uint64
	CandidateID  uint64
	LastLogIndex uint64
	LastLogTerm  uint64
}

type RequestVoteResponse struct {
	Term        uint64
	VoteGranted bool
}

type AppendEntriesRequest struct {
	Term         uint64
	LeaderID     uint64
	PrevLogIndex uint64
	PrevLogTerm  uint64
	Entries      []Entry
	LeaderCommit uint64
}

type AppendEntriesResponse struct {
	Term    uint64
	Success bool
	// MatchHint, when non-zero on a rejection, is the follower's suggestion
	// for the last index the leader should assume matched. The leader resumes
	// probing at MatchHint+1 instead of decrementing one step at a time.
	MatchHint uint64
}

// Status is a point-in-time snapshot of node state, produced on the
// node's event loop.
type Status struct {
	ID           uint64
	Role         Role
	Term         uint64
	LeaderID     uint64
	VotedFor     uint64
	CommitIndex  uint64
	LastApplied  uint64
	LastLogIndex uint64
	LastLogTerm  uint64
}

// Progress is the leader's replication bookkeeping for one peer. It exists
// only while the node is leader and is discarded on every role change.
type Progress struct {
	// Next is the index of the next entry to send to the peer.
	Next uint64
	// Match is the highest index known to be replicated on the peer.
	Match uint64
}
