package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tidwall/wal"
	"google.golang.org/protobuf/proto"

	"raftlog/internal/metrics"
	"raftlog/internal/raft"
	"raftlog/internal/raft/gen/raftpb"
)

const (
	RecordTypeEntry     byte = 1
	RecordTypeHardState byte = 2
	RecordTypeTruncate  byte = 3
)

const walFolder = "wal"

// WAL persists hard state and log entries as typed records in an
// append-only write-ahead log. Physical WAL indexes are independent of
// raft log indexes; a truncate is recorded as a marker, never by rewriting
// history, so replay reconstructs exactly the state the node last
// acknowledged.
type WAL struct {
	mu sync.Mutex

	dir    string
	log    *wal.Log
	noSync bool

	nextWALIdx uint64
}

// Open opens (or creates) the WAL under dir and replays it. The returned
// RecoveredState holds the reconstructed hard state and log.
func Open(dir string, noSync bool) (*WAL, raft.RecoveredState, error) {
	var recovered raft.RecoveredState

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, recovered, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	opts := *wal.DefaultOptions
	opts.NoSync = noSync
	log, err := wal.Open(filepath.Join(dir, walFolder), &opts)
	if err != nil {
		return nil, recovered, fmt.Errorf("wal.Open: %w", err)
	}

	w := &WAL{
		dir:        dir,
		log:        log,
		noSync:     noSync,
		nextWALIdx: 1,
	}

	recovered, err = w.replay()
	if err != nil {
		log.Close()
		return nil, recovered, err
	}

	return w, recovered, nil
}

func (w *WAL) replay() (raft.RecoveredState, error) {
	var recovered raft.RecoveredState

	empty, err := w.log.IsEmpty()
	if err != nil {
		return recovered, fmt.Errorf("wal.IsEmpty: %w", err)
	}
	if empty {
		return recovered, nil
	}

	first, err := w.log.FirstIndex()
	if err != nil {
		return recovered, fmt.Errorf("wal.FirstIndex: %w", err)
	}
	last, err := w.log.LastIndex()
	if err != nil {
		return recovered, fmt.Errorf("wal.LastIndex: %w", err)
	}

	var entries []raft.Entry

	for idx := first; idx <= last; idx++ {
		data, err := w.log.Read(idx)
		if err != nil {
			return recovered, fmt.Errorf("wal.Read(%d): %w", idx, err)
		}

		recType, payload, err := unmarshalRecord(data)
		if err != nil {
			return recovered, fmt.Errorf("unmarshal record %d: %w", idx, err)
		}

		switch recType {
		case RecordTypeEntry:
			var e raftpb.LogEntry
			if err := proto.Unmarshal(payload, &e); err != nil {
				return recovered, fmt.Errorf("unmarshal entry record %d: %w", idx, err)
			}
			entries = append(entries, raft.Entry{
				Index:   e.GetIndex(),
				Term:    e.GetTerm(),
				Command: e.GetCommand(),
			})

		case RecordTypeHardState:
			var hs raftpb.HardState
			if err := proto.Unmarshal(payload, &hs); err != nil {
				return recovered, fmt.Errorf("unmarshal hardstate record %d: %w", idx, err)
			}
			recovered.Term = hs.GetTerm()
			recovered.VotedFor = hs.GetVotedFor()

		case RecordTypeTruncate:
			var tr raftpb.TruncateRecord
			if err := proto.Unmarshal(payload, &tr); err != nil {
				return recovered, fmt.Errorf("unmarshal truncate record %d: %w", idx, err)
			}
			entries = truncateEntries(entries, tr.GetIndex())

		default:
			return recovered, fmt.Errorf("unknown record type %d at wal index %d", recType, idx)
		}

		w.nextWALIdx = idx + 1
	}

	recovered.Entries = entries

	lastLogIndex := uint64(0)
	if len(entries) > 0 {
		lastLogIndex = entries[len(entries)-1].Index
	}
	slog.Info("replayed write-ahead log",
		"wal_first", first,
		"wal_last", last,
		"entries", len(entries),
		"last_log_index", lastLogIndex,
		"term", recovered.Term,
	)

	return recovered, nil
}

func truncateEntries(entries []raft.Entry, from uint64) []raft.Entry {
	for i, e := range entries {
		if e.Index >= from {
			return entries[:i]
		}
	}
	return entries
}

func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.log != nil {
		return w.log.Close()
	}
	return nil
}

// SaveHardState durably records the current term and vote.
func (w *WAL) SaveHardState(term, votedFor uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	payload, err := proto.Marshal(&raftpb.HardState{Term: term, VotedFor: votedFor})
	if err != nil {
		return fmt.Errorf("marshal hardstate: %w", err)
	}
	if err := w.appendRecordLocked(RecordTypeHardState, payload); err != nil {
		return err
	}
	return w.syncLocked()
}

// AppendEntries durably appends log entries in order.
func (w *WAL) AppendEntries(entries []raft.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range entries {
		payload, err := proto.Marshal(&raftpb.LogEntry{
			Index:   e.Index,
			Term:    e.Term,
			Command: e.Command,
		})
		if err != nil {
			return fmt.Errorf("marshal entry %d: %w", e.Index, err)
		}
		if err := w.appendRecordLocked(RecordTypeEntry, payload); err != nil {
			return err
		}
	}
	return w.syncLocked()
}

// TruncateFrom durably marks the log as ending before index. The discarded
// records stay in the WAL; replay applies the marker in sequence.
func (w *WAL) TruncateFrom(index uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	payload, err := proto.Marshal(&raftpb.TruncateRecord{Index: index})
	if err != nil {
		return fmt.Errorf("marshal truncate: %w", err)
	}
	if err := w.appendRecordLocked(RecordTypeTruncate, payload); err != nil {
		return err
	}
	return w.syncLocked()
}

func (w *WAL) appendRecordLocked(recType byte, payload []byte) error {
	start := time.Now()
	data := marshalRecord(recType, payload)
	if err := w.log.Write(w.nextWALIdx, data); err != nil {
		return fmt.Errorf("wal.Write(%d): %w", w.nextWALIdx, err)
	}
	w.nextWALIdx++

	metrics.WALWritesTotal.Inc()
	metrics.WALWriteDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (w *WAL) syncLocked() error {
	if w.noSync {
		return nil
	}
	start := time.Now()
	if err := w.log.Sync(); err != nil {
		return fmt.Errorf("wal.Sync: %w", err)
	}
	metrics.WALSyncDuration.Observe(time.Since(start).Seconds())
	return nil
}

func marshalRecord(recType byte, payload []byte) []byte {
	buf := make([]byte, 1+binary.MaxVarintLen64+len(payload))
	buf[0] = recType
	n := binary.PutUvarint(buf[1:], uint64(len(payload)))
	copy(buf[1+n:], payload)
	return buf[:1+n+len(payload)]
}

func unmarshalRecord(data []byte) (byte, []byte, error) {
	if len(data) < 2 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	recType := data[0]
	length, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	start := 1 + n
	end := start + int(length)
	if end > len(data) {
		return 0, nil, io.ErrUnexpectedEOF
	}
	return recType, data[start:end], nil
}
