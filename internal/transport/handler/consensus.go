package handler

import (
	"context"

	"raftlog/internal/raft"
	"raftlog/internal/raft/gen/raftpb"
)

// ConsensusHandler exposes the node's two consensus RPCs over gRPC.
type ConsensusHandler struct {
	raftpb.UnimplementedConsensusServiceServer
	node *raft.Node
}

func NewConsensusHandler(node *raft.Node) *ConsensusHandler {
	return &ConsensusHandler{node: node}
}

func (h *ConsensusHandler) RequestVote(ctx context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error) {
	resp, err := h.node.HandleRequestVote(ctx, &raft.RequestVoteRequest{
		Term:         req.GetTerm(),
		CandidateID:  req.GetCandidateId(),
		LastLogIndex: req.GetLastLogIndex(),
		LastLogTerm:  req.GetLastLogTerm(),
	})
	if err != nil {
		return nil, raftError(err)
	}

	return &raftpb.RequestVoteResponse{
		Term:        resp.Term,
		VoteGranted: resp.VoteGranted,
	}, nil
}

func (h *ConsensusHandler) AppendEntries(ctx context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error) {
	entries := make([]raft.Entry, len(req.GetEntries()))
	for i, e := range req.GetEntries() {
		entries[i] = raft.Entry{Index: e.GetIndex(), Term: e.GetTerm(), Command: e.GetCommand()}
	}

	resp, err := h.node.HandleAppendEntries(ctx, &raft.AppendEntriesRequest{
		Term:         req.GetTerm(),
		LeaderID:     req.GetLeaderId(),
		PrevLogIndex: req.GetPrevLogIndex(),
		PrevLogTerm:  req.GetPrevLogTerm(),
		Entries:      entries,
		LeaderCommit: req.GetLeaderCommit(),
	})
	if err != nil {
		return nil, raftError(err)
	}

	return &raftpb.AppendEntriesResponse{
		Term:      resp.Term,
		Success:   resp.Success,
		MatchHint: resp.MatchHint,
	}, nil
}
