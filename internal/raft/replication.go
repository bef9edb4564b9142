package raft

import (
	"context"
	"log/slog"
	"strconv"

	"raftlog/internal/metrics"
)

func peerLabel(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// stepAppendEntries handles a leader's replication or heartbeat RPC.
func (n *Node) stepAppendEntries(req *AppendEntriesRequest) (*AppendEntriesResponse, error) {
	metrics.RaftMessagesTotal.WithLabelValues("received", "append_entries").Inc()

	if req.Term < n.currentTerm {
		return &AppendEntriesResponse{Term: n.currentTerm, Success: false}, nil
	}
	// An equal-term AppendEntries proves a leader for this term exists; a
	// candidate concedes, a follower just refreshes its timer.
	if err := n.becomeFollower(req.Term, req.LeaderID); err != nil {
		return nil, err
	}

	// Consistency check against the entry preceding the batch.
	prevTerm, ok := n.log.Term(req.PrevLogIndex)
	if !ok {
		// Log too short: tell the leader where it actually ends.
		return &AppendEntriesResponse{
			Term:      n.currentTerm,
			Success:   false,
			MatchHint: n.log.LastIndex(),
		}, nil
	}
	if prevTerm != req.PrevLogTerm {
		hint := uint64(0)
		if req.PrevLogIndex > 0 {
			hint = req.PrevLogIndex - 1
		}
		return &AppendEntriesResponse{
			Term:      n.currentTerm,
			Success:   false,
			MatchHint: hint,
		}, nil
	}

	if err := n.appendFromLeader(req.Entries); err != nil {
		return nil, err
	}

	// Clamp to the batch end; a delayed RPC for an earlier prefix must not
	// move commitIndex backwards.
	lastNew := req.PrevLogIndex + uint64(len(req.Entries))
	if c := min64(req.LeaderCommit, lastNew); c > n.commitIndex {
		n.commitIndex = c
		n.enqueueCommitted()
	}

	return &AppendEntriesResponse{Term: n.currentTerm, Success: true}, nil
}

// appendFromLeader merges a consistent batch into the local log. Entries
// that already match are skipped so retransmissions are harmless; the first
// conflicting entry truncates the suffix.
func (n *Node) appendFromLeader(entries []Entry) error {
	for i, e := range entries {
		localTerm, ok := n.log.Term(e.Index)
		if ok && localTerm == e.Term {
			continue
		}
		if ok {
			// Conflict: a stale suffix from a deposed leader. Committed
			// entries never conflict, so this only discards uncommitted ones.
			slog.Warn("truncating conflicting log suffix",
				"node_id", n.cfg.ID,
				"from_index", e.Index,
				"local_term", localTerm,
				"leader_term", e.Term,
			)
			if err := n.storage.TruncateFrom(e.Index); err != nil {
				return err
			}
			n.log.TruncateFrom(e.Index)
		}
		batch := entries[i:]
		if err := n.storage.AppendEntries(batch); err != nil {
			return err
		}
		n.log.Append(batch...)
		break
	}
	return nil
}

// broadcastAppend sends each peer its next batch, or a heartbeat when it is
// caught up.
func (n *Node) broadcastAppend() {
	for _, peer := range n.cfg.Peers {
		n.sendAppend(peer)
	}
}

func (n *Node) sendAppend(peer uint64) {
	pr := n.progress[peer]
	prevIndex := pr.Next - 1
	prevTerm, ok := n.log.Term(prevIndex)
	if !ok {
		// Snapshot transfer is out of scope; the log is retained in full,
		// so Next can always be walked back to a real entry.
		slog.Error("peer progress points past retained log",
			"node_id", n.cfg.ID,
			"peer_id", peer,
			"next", pr.Next,
		)
		return
	}

	entries := n.log.Slice(pr.Next, n.cfg.MaxBatchEntries)
	req := &AppendEntriesRequest{
		Term:         n.currentTerm,
		LeaderID:     n.cfg.ID,
		PrevLogIndex: prevIndex,
		PrevLogTerm:  prevTerm,
		Entries:      entries,
		LeaderCommit: n.commitIndex,
	}
	go n.dispatchAppend(peer, req)
}

// dispatchAppend runs outside the loop; the reply re-enters as an event.
func (n *Node) dispatchAppend(peer uint64, req *AppendEntriesRequest) {
	metrics.RaftMessagesTotal.WithLabelValues("sent", "append_entries").Inc()

	resp, err := n.transport.AppendEntries(context.Background(), peer, req)
	if err != nil {
		metrics.RaftMessageErrors.WithLabelValues(peerLabel(peer)).Inc()
		slog.Debug("append entries failed",
			"node_id", n.cfg.ID,
			"peer_id", peer,
			"error", err,
		)
		return
	}
	n.enqueue(appendReplyEvent{
		peer:      peer,
		term:      req.Term,
		prevIndex: req.PrevLogIndex,
		count:     len(req.Entries),
		resp:      resp,
	})
}

func (n *Node) stepAppendReply(ev appendReplyEvent) error {
	if ev.resp.Term > n.currentTerm {
		return n.becomeFollower(ev.resp.Term, None)
	}
	// A reply for an RPC sent in an older leadership is stale.
	if n.role != Leader || ev.term != n.currentTerm {
		return nil
	}

	pr, ok := n.progress[ev.peer]
	if !ok {
		return nil
	}

	if ev.resp.Success {
		match := ev.prevIndex + uint64(ev.count)
		// Out-of-order replies must not move progress backwards.
		if match > pr.Match {
			pr.Match = match
		}
		if match+1 > pr.Next {
			pr.Next = match + 1
		}
		n.maybeAdvanceCommit()
		// Keep streaming while the peer is behind.
		if pr.Next <= n.log.LastIndex() {
			n.sendAppend(ev.peer)
		}
		return nil
	}

	// Rejected on consistency: back off using the follower's hint and retry
	// immediately rather than waiting for the next heartbeat. Each retry
	// strictly lowers Next (floor 1), so the probe chain terminates.
	next := ev.resp.MatchHint + 1
	if next < 1 {
		next = 1
	}
	if next < pr.Next {
		pr.Next = next
	} else if pr.Next > 1 {
		pr.Next--
	}
	n.sendAppend(ev.peer)
	return nil
}

// maybeAdvanceCommit advances commitIndex to the highest N replicated on a
// quorum, restricted to entries from the current term.
func (n *Node) maybeAdvanceCommit() {
	for candidate := n.log.LastIndex(); candidate > n.commitIndex; candidate-- {
		term, ok := n.log.Term(candidate)
		if !ok {
			return
		}
		// Entries from prior terms are committed only transitively, never
		// counted directly.
		if term != n.currentTerm {
			return
		}

		replicated := 1 // self
		for _, pr := range n.progress {
			if pr.Match >= candidate {
				replicated++
			}
		}
		if replicated >= n.quorum() {
			n.commitIndex = candidate
			slog.Debug("commit index advanced",
				"node_id", n.cfg.ID,
				"commit_index", candidate,
			)
			n.enqueueCommitted()
			return
		}
	}
}

// enqueueCommitted hands newly committed entries to the apply loop in order.
func (n *Node) enqueueCommitted() {
	for n.lastEnqueued < n.commitIndex {
		next := n.lastEnqueued + 1
		entry, ok := n.log.Entry(next)
		if !ok {
			slog.Error("committed entry missing from log",
				"node_id", n.cfg.ID,
				"index", next,
			)
			return
		}
		n.applier.submit(entry)
		n.lastEnqueued = next
	}
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
