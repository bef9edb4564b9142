package broker

import (
	"sync"

	"raftlog/internal/metrics"
)

// Record is one committed message as consumers see it.
type Record struct {
	Index   uint64
	Payload []byte
}

// CommitLog is the broker's materialized view of the replicated log: an
// append-only, in-memory sequence of committed records. It fills in
// strictly ascending index order through Apply and never reorders or
// drops a record once admitted.
type CommitLog struct {
	mu      sync.RWMutex
	records []Record
	last    uint64
}

func NewCommitLog() *CommitLog {
	return &CommitLog{}
}

// Apply admits the committed entry at index. Re-applied indexes from a
// replay after restart are skipped, which keeps Apply idempotent.
func (l *CommitLog) Apply(index uint64, command []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index <= l.last {
		return nil
	}
	l.records = append(l.records, Record{Index: index, Payload: command})
	l.last = index
	metrics.BrokerRecordsTotal.Inc()
	return nil
}

// Read returns up to max records starting at fromIndex. A fromIndex past
// the end yields an empty result, not an error.
func (l *CommitLog) Read(fromIndex uint64, max int) []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.records) == 0 || max <= 0 {
		return nil
	}
	if fromIndex < l.records[0].Index {
		fromIndex = l.records[0].Index
	}

	// Records are dense in index, so the offset is a direct computation.
	first := l.records[0].Index
	if fromIndex > l.last {
		return nil
	}
	start := int(fromIndex - first)
	end := start + max
	if end > len(l.records) {
		end = len(l.records)
	}

	out := make([]Record, end-start)
	copy(out, l.records[start:end])
	return out
}

// LastIndex is the highest admitted record index.
func (l *CommitLog) LastIndex() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last
}

func (l *CommitLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
