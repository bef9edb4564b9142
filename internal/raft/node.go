package raft

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"raftlog/internal/metrics"
)

type Config struct {
	ID uint64
	// Peers are the other members of the static cluster; majority is
	// computed over len(Peers)+1.
	Peers              []uint64
	ElectionTimeoutMin time.Duration
	ElectionTimeoutMax time.Duration
	HeartbeatInterval  time.Duration
	// MaxBatchEntries caps entries per AppendEntries to bound RPC size.
	MaxBatchEntries int
	InboxSize       int
}

const (
	defaultInboxSize = 256
	defaultMaxBatch  = 64
	applyQueueSize   = 1024
)

// RecoveredState is what Storage reconstructed from disk at startup.
type RecoveredState struct {
	Term     uint64
	VotedFor uint64
	Entries  []Entry
}

// Node is the consensus state machine for one cluster member. All state
// below the sync fields is owned by the run goroutine; external callers
// interact exclusively through events.
type Node struct {
	cfg Config

	role        Role
	currentTerm uint64
	votedFor    uint64
	leaderID    uint64
	commitIndex uint64

	log       *Log
	storage   Storage
	transport Transport

	// Candidate-only: granted votes by voter id, self included.
	votes map[uint64]bool
	// Leader-only: per-peer replication progress.
	progress map[uint64]*Progress

	// timerEpoch increments on every timer reset and role change; events
	// carrying an older epoch are dropped.
	timerEpoch    uint64
	electionTimer *time.Timer

	// lastEnqueued tracks the highest index handed to the applier.
	lastEnqueued uint64
	applier      *applier

	inbox     chan event
	stopCh    chan struct{}
	stoppedWg sync.WaitGroup
	stopOnce  sync.Once
	halted    atomic.Bool

	rng *rand.Rand
}

func NewNode(cfg Config, storage Storage, recovered RecoveredState, transport Transport, sm StateMachine) *Node {
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = defaultInboxSize
	}
	if cfg.MaxBatchEntries <= 0 {
		cfg.MaxBatchEntries = defaultMaxBatch
	}

	n := &Node{
		cfg:         cfg,
		role:        Follower,
		currentTerm: recovered.Term,
		votedFor:    recovered.VotedFor,
		log:         NewLog(recovered.Entries),
		storage:     storage,
		transport:   transport,
		applier:     newApplier(sm, applyQueueSize),
		inbox:       make(chan event, cfg.InboxSize),
		stopCh:      make(chan struct{}),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(cfg.ID)<<32)),
	}

	slog.Info("raft node created",
		"node_id", cfg.ID,
		"peers", len(cfg.Peers),
		"term", recovered.Term,
		"last_log_index", n.log.LastIndex(),
	)

	return n
}

func (n *Node) Start() {
	n.applier.start()

	n.stoppedWg.Add(1)
	go func() {
		defer n.stoppedWg.Done()
		n.run()
	}()

	slog.Info("raft node started", "node_id", n.cfg.ID, "role", n.role)
}

func (n *Node) Stop() {
	n.stopOnce.Do(func() {
		n.halted.Store(true)
		close(n.stopCh)
	})
	n.stoppedWg.Wait()
	if n.electionTimer != nil {
		n.electionTimer.Stop()
	}
	n.applier.stop()
	slog.Info("raft node stopped", "node_id", n.cfg.ID)
}

// run is the single event loop. Nothing else touches node state.
func (n *Node) run() {
	// A restarted node begins as follower and waits out a full election
	// timeout before contending. Arming the timer here keeps all timer
	// state on the loop goroutine.
	n.resetElectionTimer()

	for {
		select {
		case <-n.stopCh:
			return
		case ev := <-n.inbox:
			if err := n.step(ev); err != nil {
				// Storage failures are the only errors step surfaces.
				// Operating on unpersisted state can violate safety after
				// a crash-recover cycle, so the node halts instead.
				slog.Error("fatal storage failure, halting node",
					"node_id", n.cfg.ID,
					"error", err,
				)
				n.halted.Store(true)
				return
			}
		}
	}
}

func (n *Node) step(ev event) error {
	switch ev := ev.(type) {
	case requestVoteEvent:
		resp, err := n.stepRequestVote(ev.req)
		if err != nil {
			// The caller's context will expire; the node is halting.
			return err
		}
		ev.resp <- resp
		return nil

	case appendEntriesEvent:
		resp, err := n.stepAppendEntries(ev.req)
		if err != nil {
			return err
		}
		ev.resp <- resp
		return nil

	case voteReplyEvent:
		return n.stepVoteReply(ev)

	case appendReplyEvent:
		return n.stepAppendReply(ev)

	case electionTimeoutEvent:
		if ev.epoch != n.timerEpoch {
			return nil // stale timer, cancelled by a role change or reset
		}
		return n.stepElectionTimeout()

	case heartbeatTickEvent:
		if ev.epoch != n.timerEpoch || n.role != Leader {
			return nil
		}
		n.broadcastAppend()
		n.scheduleHeartbeat()
		return nil

	case submitEvent:
		index, term, err := n.stepSubmit(ev.command)
		ev.resp <- submitResult{index: index, term: term, err: err}
		if err != nil && !errors.Is(err, ErrNotLeader) {
			// Anything else out of stepSubmit is a storage failure.
			return err
		}
		return nil

	case statusEvent:
		ev.resp <- n.status()
		return nil
	}

	return nil
}

// enqueue posts an event to the loop; it reports false when the node has
// stopped or halted.
func (n *Node) enqueue(ev event) bool {
	if n.halted.Load() {
		return false
	}
	select {
	case n.inbox <- ev:
		return true
	case <-n.stopCh:
		return false
	}
}

// HandleRequestVote serializes an incoming RequestVote through the event loop.
func (n *Node) HandleRequestVote(ctx context.Context, req *RequestVoteRequest) (*RequestVoteResponse, error) {
	respCh := make(chan *RequestVoteResponse, 1)
	if !n.enqueue(requestVoteEvent{req: req, resp: respCh}) {
		return nil, ErrShuttingDown
	}
	select {
	case resp := <-respCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// HandleAppendEntries serializes an incoming AppendEntries through the event loop.
func (n *Node) HandleAppendEntries(ctx context.Context, req *AppendEntriesRequest) (*AppendEntriesResponse, error) {
	respCh := make(chan *AppendEntriesResponse, 1)
	if !n.enqueue(appendEntriesEvent{req: req, resp: respCh}) {
		return nil, ErrShuttingDown
	}
	select {
	case resp := <-respCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit appends a command on the leader and returns its log index and the
// term it was appended under, without waiting for replication. Callers
// observe durability via WaitUntilApplied.
func (n *Node) Submit(ctx context.Context, command []byte) (uint64, uint64, error) {
	metrics.RaftProposalsTotal.Inc()

	respCh := make(chan submitResult, 1)
	if !n.enqueue(submitEvent{command: command, resp: respCh}) {
		metrics.RaftProposalsFailed.Inc()
		return 0, 0, ErrShuttingDown
	}
	select {
	case res := <-respCh:
		if res.err != nil {
			metrics.RaftProposalsFailed.Inc()
		}
		return res.index, res.term, res.err
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	}
}

func (n *Node) Status() Status {
	respCh := make(chan Status, 1)
	if !n.enqueue(statusEvent{resp: respCh}) {
		return Status{ID: n.cfg.ID, Role: Follower}
	}
	return <-respCh
}

// LastApplied reads the applier's progress; safe from any goroutine.
func (n *Node) LastApplied() uint64 {
	return n.applier.lastApplied()
}

// WaitUntilApplied blocks until the apply loop has passed index.
func (n *Node) WaitUntilApplied(ctx context.Context, index uint64) error {
	return n.applier.waitUntilApplied(ctx, index)
}

func (n *Node) status() Status {
	return Status{
		ID:           n.cfg.ID,
		Role:         n.role,
		Term:         n.currentTerm,
		LeaderID:     n.leaderID,
		VotedFor:     n.votedFor,
		CommitIndex:  n.commitIndex,
		LastApplied:  n.applier.lastApplied(),
		LastLogIndex: n.log.LastIndex(),
		LastLogTerm:  n.log.LastTerm(),
	}
}

// quorum is floor(n/2)+1 of the full configured cluster, self included.
func (n *Node) quorum() int {
	return (len(n.cfg.Peers)+1)/2 + 1
}

// persistHardState makes {currentTerm, votedFor} durable before any RPC
// response referencing them is sent.
func (n *Node) persistHardState() error {
	return n.storage.SaveHardState(n.currentTerm, n.votedFor)
}

func (n *Node) stepSubmit(command []byte) (uint64, uint64, error) {
	if n.role != Leader {
		return 0, 0, ErrNotLeader
	}

	entry := Entry{
		Index:   n.log.LastIndex() + 1,
		Term:    n.currentTerm,
		Command: command,
	}
	if err := n.storage.AppendEntries([]Entry{entry}); err != nil {
		return 0, 0, err
	}
	n.log.Append(entry)

	slog.Debug("command accepted",
		"node_id", n.cfg.ID,
		"index", entry.Index,
		"term", entry.Term,
	)

	// Backlog trigger: dispatch immediately instead of waiting a full
	// heartbeat interval. A single-node cluster commits right away.
	n.maybeAdvanceCommit()
	n.broadcastAppend()

	return entry.Index, entry.Term, nil
}

// UpdateMetrics publishes gauges from a status snapshot; the daemon calls
// this periodically.
func (n *Node) UpdateMetrics() {
	st := n.Status()
	if st.Role == Leader {
		metrics.RaftIsLeader.Set(1)
	} else {
		metrics.RaftIsLeader.Set(0)
	}
	metrics.RaftTerm.Set(float64(st.Term))
	metrics.RaftCommitIndex.Set(float64(st.CommitIndex))
	metrics.RaftAppliedIndex.Set(float64(st.LastApplied))
	metrics.RaftLastLogIndex.Set(float64(st.LastLogIndex))
}
