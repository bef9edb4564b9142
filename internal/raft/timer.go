package raft

import "time"

// resetElectionTimer arms a one-shot election timer with a fresh random
// duration. Bumping the epoch invalidates any timer already in flight, so
// a fire scheduled before the reset becomes a no-op when it reaches the
// loop.
func (n *Node) resetElectionTimer() {
	n.timerEpoch++
	epoch := n.timerEpoch

	if n.electionTimer != nil {
		n.electionTimer.Stop()
	}
	n.electionTimer = time.AfterFunc(n.randomElectionTimeout(), func() {
		n.enqueue(electionTimeoutEvent{epoch: epoch})
	})
}

// scheduleHeartbeat arms the next leader tick under the current epoch. The
// loop re-arms after each fire; stepping down bumps the epoch and the chain
// dies on its own.
func (n *Node) scheduleHeartbeat() {
	epoch := n.timerEpoch
	if n.electionTimer != nil {
		n.electionTimer.Stop()
	}
	n.electionTimer = time.AfterFunc(n.cfg.HeartbeatInterval, func() {
		n.enqueue(heartbeatTickEvent{epoch: epoch})
	})
}

func (n *Node) randomElectionTimeout() time.Duration {
	min := n.cfg.ElectionTimeoutMin
	max := n.cfg.ElectionTimeoutMax
	if max <= min {
		return min
	}
	return min + time.Duration(n.rng.Int63n(int64(max-min)))
}
