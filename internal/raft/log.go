package raft

// Log is the in-memory view of the replicated log. It is owned by the
// node's event loop and never accessed concurrently. Durability is the
// Storage collaborator's concern; Log only tracks the logical sequence.
type Log struct {
	entries []Entry // entries[0], when present, has Index firstIndex
}

func NewLog(entries []Entry) *Log {
	return &Log{entries: entries}
}

func (l *Log) LastIndex() uint64 {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[len(l.entries)-1].Index
}

func (l *Log) LastTerm() uint64 {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[len(l.entries)-1].Term
}

// Term returns the term of the entry at index, or false if the log holds
// no such entry. Index 0 is the empty prefix and always matches term 0.
func (l *Log) Term(index uint64) (uint64, bool) {
	if index == 0 {
		return 0, true
	}
	e, ok := l.Entry(index)
	if !ok {
		return 0, false
	}
	return e.Term, true
}

func (l *Log) Entry(index uint64) (Entry, bool) {
	if index == 0 || index > l.LastIndex() || len(l.entries) == 0 {
		return Entry{}, false
	}
	first := l.entries[0].Index
	if index < first {
		return Entry{}, false
	}
	return l.entries[index-first], true
}

func (l *Log) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
}

// TruncateFrom drops the entry at index and everything after it. This is
// the only way the log shrinks, and only AppendEntries conflict
// resolution invokes it.
func (l *Log) TruncateFrom(index uint64) {
	if len(l.entries) == 0 {
		return
	}
	first := l.entries[0].Index
	if index < first {
		l.entries = l.entries[:0]
		return
	}
	if index > l.LastIndex() {
		return
	}
	l.entries = l.entries[:index-first]
}

// Slice returns a copy of up to max entries starting at from. The copy
// keeps the caller from observing later in-place mutation.
func (l *Log) Slice(from uint64, max int) []Entry {
	last := l.LastIndex()
	if from > last || max <= 0 || len(l.entries) == 0 {
		return nil
	}
	first := l.entries[0].Index
	if from < first {
		from = first
	}
	end := from + uint64(max)
	if end > last+1 {
		end = last + 1
	}
	out := make([]Entry, end-from)
	copy(out, l.entries[from-first:end-first])
	return out
}

func (l *Log) Len() int { return len(l.entries) }
