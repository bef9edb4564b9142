package broker

import (
	"context"
	"errors"

	"raftlog/internal/raft"
)

// ErrEmptyPayload rejects produce requests with no body.
var ErrEmptyPayload = errors.New("empty payload")

// ProduceResult tells the producer where its record landed.
type ProduceResult struct {
	Index uint64
	Term  uint64
}

// Service is the client-facing broker surface. It bridges produce and
// consume requests onto the consensus node and the commit log.
type Service struct {
	node *raft.Node
	log  *CommitLog
}

func NewService(node *raft.Node, log *CommitLog) *Service {
	return &Service{node: node, log: log}
}

// Produce replicates payload through consensus and returns the index and
// term its record was appended under. The record is accepted, not yet
// committed; pair with Await for a durability barrier.
func (s *Service) Produce(ctx context.Context, payload []byte) (ProduceResult, error) {
	if len(payload) == 0 {
		return ProduceResult{}, ErrEmptyPayload
	}

	index, term, err := s.node.Submit(ctx, payload)
	if err != nil {
		return ProduceResult{}, err
	}
	return ProduceResult{Index: index, Term: term}, nil
}

// Await blocks until the record at index has been committed and applied.
func (s *Service) Await(ctx context.Context, index uint64) (uint64, error) {
	if err := s.node.WaitUntilApplied(ctx, index); err != nil {
		return 0, err
	}
	return s.node.LastApplied(), nil
}

// Read returns up to max committed records starting at fromIndex.
func (s *Service) Read(fromIndex uint64, max int) []Record {
	return s.log.Read(fromIndex, max)
}

// Status reports the node's consensus view, including the leader hint
// clients use to redirect produce traffic.
func (s *Service) Status() raft.Status {
	return s.node.Status()
}
