package transport

import (
	"raftlog/internal/raft"
	"raftlog/internal/raft/gen/raftpb"
)

func requestVoteToProto(req *raft.RequestVoteRequest) *raftpb.RequestVoteRequest {
	return &raftpb.RequestVoteRequest{
		Term:         req.Term,
		CandidateId:  req.CandidateID,
		LastLogIndex: req.LastLogIndex,
		LastLogTerm:  req.LastLogTerm,
	}
}

func requestVoteRespFromProto(resp *raftpb.RequestVoteResponse) *raft.RequestVoteResponse {
	return &raft.RequestVoteResponse{
		Term:        resp.GetTerm(),
		VoteGranted: resp.GetVoteGranted(),
	}
}

func appendEntriesToProto(req *raft.AppendEntriesRequest) *raftpb.AppendEntriesRequest {
	return &raftpb.AppendEntriesRequest{
		Term:         req.Term,
		LeaderId:     req.LeaderID,
		PrevLogIndex: req.PrevLogIndex,
		PrevLogTerm:  req.PrevLogTerm,
		Entries:      entriesToProto(req.Entries),
		LeaderCommit: req.LeaderCommit,
	}
}

func appendEntriesRespFromProto(resp *raftpb.AppendEntriesResponse) *raft.AppendEntriesResponse {
	return &raft.AppendEntriesResponse{
		Term:      resp.GetTerm(),
		Success:   resp.GetSuccess(),
		MatchHint: resp.GetMatchHint(),
	}
}

func entriesToProto(entries []raft.Entry) []*raftpb.LogEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]*raftpb.LogEntry, len(entries))
	for i, e := range entries {
		out[i] = &raftpb.LogEntry{Index: e.Index, Term: e.Term, Command: e.Command}
	}
	return out
}
