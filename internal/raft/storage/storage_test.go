package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raftlog/internal/raft"
)

func openForTest(t *testing.T, dir string) (*WAL, raft.RecoveredState) {
	t.Helper()
	w, recovered, err := Open(dir, false)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w, recovered
}

func TestOpen_FreshDirectory(t *testing.T) {
	_, recovered := openForTest(t, t.TempDir())

	assert.Equal(t, uint64(0), recovered.Term)
	assert.Equal(t, uint64(0), recovered.VotedFor)
	assert.Empty(t, recovered.Entries)
}

func TestHardState_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	w, _ := openForTest(t, dir)
	require.NoError(t, w.SaveHardState(3, 2))
	require.NoError(t, w.SaveHardState(4, 0))
	require.NoError(t, w.Close())

	_, recovered := openForTest(t, dir)
	assert.Equal(t, uint64(4), recovered.Term, "latest hard state wins")
	assert.Equal(t, uint64(0), recovered.VotedFor)
}

func TestEntries_SurviveReopen(t *testing.T) {
	dir := t.TempDir()

	w, _ := openForTest(t, dir)
	require.NoError(t, w.AppendEntries([]raft.Entry{
		{Index: 1, Term: 1, Command: []byte("a")},
		{Index: 2, Term: 1, Command: []byte("b")},
	}))
	require.NoError(t, w.AppendEntries([]raft.Entry{
		{Index: 3, Term: 2, Command: []byte("c")},
	}))
	require.NoError(t, w.Close())

	_, recovered := openForTest(t, dir)
	require.Len(t, recovered.Entries, 3)
	assert.Equal(t, uint64(3), recovered.Entries[2].Index)
	assert.Equal(t, uint64(2), recovered.Entries[2].Term)
	assert.Equal(t, []byte("c"), recovered.Entries[2].Command)
}

func TestTruncate_ReplaysInSequence(t *testing.T) {
	dir := t.TempDir()

	w, _ := openForTest(t, dir)
	require.NoError(t, w.AppendEntries([]raft.Entry{
		{Index: 1, Term: 1, Command: []byte("a")},
		{Index: 2, Term: 1, Command: []byte("b")},
		{Index: 3, Term: 1, Command: []byte("c")},
	}))
	require.NoError(t, w.TruncateFrom(2))
	require.NoError(t, w.AppendEntries([]raft.Entry{
		{Index: 2, Term: 2, Command: []byte("b2")},
	}))
	require.NoError(t, w.Close())

	_, recovered := openForTest(t, dir)
	require.Len(t, recovered.Entries, 2)
	assert.Equal(t, uint64(1), recovered.Entries[0].Term)
	assert.Equal(t, uint64(2), recovered.Entries[1].Term)
	assert.Equal(t, []byte("b2"), recovered.Entries[1].Command)
}

func TestTruncate_WholeLog(t *testing.T) {
	dir := t.TempDir()

	w, _ := openForTest(t, dir)
	require.NoError(t, w.AppendEntries([]raft.Entry{
		{Index: 1, Term: 1, Command: []byte("a")},
	}))
	require.NoError(t, w.TruncateFrom(1))
	require.NoError(t, w.Close())

	_, recovered := openForTest(t, dir)
	assert.Empty(t, recovered.Entries)
}

func TestAppendEntries_EmptyBatchIsNoop(t *testing.T) {
	w, _ := openForTest(t, t.TempDir())
	require.NoError(t, w.AppendEntries(nil))
}

func TestRecordRoundTrip(t *testing.T) {
	payload := []byte("payload bytes")
	data := marshalRecord(RecordTypeEntry, payload)

	recType, got, err := unmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, RecordTypeEntry, recType)
	assert.Equal(t, payload, got)
}

func TestUnmarshalRecord_Corrupt(t *testing.T) {
	_, _, err := unmarshalRecord([]byte{RecordTypeEntry})
	assert.Error(t, err)

	// Declared length runs past the buffer.
	_, _, err = unmarshalRecord([]byte{RecordTypeEntry, 0x10, 0x01})
	assert.Error(t, err)
}
