package raft

import (
	"context"
	"log/slog"

	"raftlog/internal/metrics"
)

func (n *Node) becomeFollower(term, leaderID uint64) error {
	prevRole := n.role
	persist := term != n.currentTerm
	if persist {
		n.currentTerm = term
		n.votedFor = None
	}
	n.role = Follower
	n.leaderID = leaderID
	n.votes = nil
	n.progress = nil

	if persist {
		if err := n.persistHardState(); err != nil {
			return err
		}
	}
	n.resetElectionTimer()

	if prevRole != Follower {
		slog.Info("became follower",
			"node_id", n.cfg.ID,
			"term", n.currentTerm,
			"leader_id", leaderID,
		)
	}
	return nil
}

func (n *Node) stepElectionTimeout() error {
	if n.role == Leader {
		return nil
	}
	return n.startElection()
}

// startElection moves to candidate, votes for itself and solicits the rest
// of the cluster. Candidates time out into a new election, so this also
// serves as the split-vote retry path.
func (n *Node) startElection() error {
	n.currentTerm++
	n.role = Candidate
	n.votedFor = n.cfg.ID
	n.leaderID = None
	n.votes = map[uint64]bool{n.cfg.ID: true}

	if err := n.persistHardState(); err != nil {
		return err
	}
	n.resetElectionTimer()
	metrics.RaftElectionsTotal.Inc()

	slog.Info("starting election",
		"node_id", n.cfg.ID,
		"term", n.currentTerm,
		"last_log_index", n.log.LastIndex(),
	)

	if n.maybeWinElection() {
		return nil
	}

	req := &RequestVoteRequest{
		Term:         n.currentTerm,
		CandidateID:  n.cfg.ID,
		LastLogIndex: n.log.LastIndex(),
		LastLogTerm:  n.log.LastTerm(),
	}
	for _, peer := range n.cfg.Peers {
		go n.dispatchRequestVote(peer, req)
	}
	return nil
}

// dispatchRequestVote runs outside the loop; the reply re-enters as an event.
func (n *Node) dispatchRequestVote(peer uint64, req *RequestVoteRequest) {
	metrics.RaftMessagesTotal.WithLabelValues("sent", "request_vote").Inc()

	resp, err := n.transport.RequestVote(context.Background(), peer, req)
	if err != nil {
		metrics.RaftMessageErrors.WithLabelValues(peerLabel(peer)).Inc()
		slog.Debug("request vote failed",
			"node_id", n.cfg.ID,
			"peer_id", peer,
			"error", err,
		)
		return
	}
	n.enqueue(voteReplyEvent{from: peer, term: req.Term, resp: resp})
}

func (n *Node) stepVoteReply(ev voteReplyEvent) error {
	if ev.resp.Term > n.currentTerm {
		return n.becomeFollower(ev.resp.Term, None)
	}
	// Replies from an election we already left are meaningless.
	if n.role != Candidate || ev.term != n.currentTerm {
		return nil
	}
	if !ev.resp.VoteGranted {
		return nil
	}

	n.votes[ev.from] = true
	n.maybeWinElection()
	return nil
}

func (n *Node) maybeWinElection() bool {
	granted := 0
	for _, ok := range n.votes {
		if ok {
			granted++
		}
	}
	if granted < n.quorum() {
		return false
	}
	n.becomeLeader()
	return true
}

func (n *Node) becomeLeader() {
	n.role = Leader
	n.leaderID = n.cfg.ID
	n.votes = nil

	last := n.log.LastIndex()
	n.progress = make(map[uint64]*Progress, len(n.cfg.Peers))
	for _, peer := range n.cfg.Peers {
		n.progress[peer] = &Progress{Next: last + 1, Match: 0}
	}

	// Kill the election timer chain and start the heartbeat chain.
	n.timerEpoch++
	slog.Info("became leader",
		"node_id", n.cfg.ID,
		"term", n.currentTerm,
		"last_log_index", last,
	)

	// Assert leadership immediately rather than waiting one interval.
	n.broadcastAppend()
	n.maybeAdvanceCommit()
	n.scheduleHeartbeat()
}

func (n *Node) stepRequestVote(req *RequestVoteRequest) (*RequestVoteResponse, error) {
	metrics.RaftMessagesTotal.WithLabelValues("received", "request_vote").Inc()

	if req.Term < n.currentTerm {
		return &RequestVoteResponse{Term: n.currentTerm, VoteGranted: false}, nil
	}
	if req.Term > n.currentTerm {
		if err := n.becomeFollower(req.Term, None); err != nil {
			return nil, err
		}
	}

	upToDate := req.LastLogTerm > n.log.LastTerm() ||
		(req.LastLogTerm == n.log.LastTerm() && req.LastLogIndex >= n.log.LastIndex())
	canVote := n.votedFor == None || n.votedFor == req.CandidateID

	if !canVote || !upToDate {
		return &RequestVoteResponse{Term: n.currentTerm, VoteGranted: false}, nil
	}

	n.votedFor = req.CandidateID
	// The grant must survive a crash before the candidate may count it.
	if err := n.persistHardState(); err != nil {
		return nil, err
	}
	n.resetElectionTimer()
	metrics.RaftVotesGrantedTotal.Inc()

	slog.Debug("vote granted",
		"node_id", n.cfg.ID,
		"candidate_id", req.CandidateID,
		"term", n.currentTerm,
	)
	return &RequestVoteResponse{Term: n.currentTerm, VoteGranted: true}, nil
}
