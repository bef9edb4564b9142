package broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raftlog/internal/raft"
	"raftlog/internal/raft/storage"
)

// startSingleNodeBroker wires a complete single-member stack: real WAL,
// real consensus node, real commit log. With no peers the node elects
// itself and commits without any transport.
func startSingleNodeBroker(t *testing.T) *Service {
	t.Helper()

	wal, recovered, err := storage.Open(t.TempDir(), true)
	require.NoError(t, err)
	t.Cleanup(func() { wal.Close() })

	log := NewCommitLog()
	node := raft.NewNode(raft.Config{
		ID:                 1,
		ElectionTimeoutMin: 20 * time.Millisecond,
		ElectionTimeoutMax: 40 * time.Millisecond,
		HeartbeatInterval:  10 * time.Millisecond,
	}, wal, recovered, nil, log)
	node.Start()
	t.Cleanup(node.Stop)

	require.Eventually(t, func() bool {
		return node.Status().Role == raft.Leader
	}, 2*time.Second, 5*time.Millisecond)

	return NewService(node, log)
}

func TestService_ProduceAwaitRead(t *testing.T) {
	svc := startSingleNodeBroker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := svc.Produce(ctx, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Index)

	applied, err := svc.Await(ctx, res.Index)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, applied, res.Index)

	records := svc.Read(1, 10)
	require.Len(t, records, 1)
	assert.Equal(t, uint64(1), records[0].Index)
	assert.Equal(t, []byte("hello"), records[0].Payload)
}

func TestService_RejectsEmptyPayload(t *testing.T) {
	svc := startSingleNodeBroker(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := svc.Produce(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestService_StatusReportsLeadership(t *testing.T) {
	svc := startSingleNodeBroker(t)

	st := svc.Status()
	assert.Equal(t, raft.Leader, st.Role)
	assert.Equal(t, uint64(1), st.LeaderID)
}

func TestService_OrderedUnderConcurrentProduce(t *testing.T) {
	svc := startSingleNodeBroker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const producers = 8
	done := make(chan uint64, producers)
	for i := 0; i < producers; i++ {
		go func(i int) {
			res, err := svc.Produce(ctx, []byte{byte(i)})
			if err != nil {
				done <- 0
				return
			}
			done <- res.Index
		}(i)
	}

	var highest uint64
	seen := make(map[uint64]bool)
	for i := 0; i < producers; i++ {
		index := <-done
		require.NotZero(t, index, "every produce should be assigned a slot")
		require.False(t, seen[index], "indexes must be unique")
		seen[index] = true
		if index > highest {
			highest = index
		}
	}

	_, err := svc.Await(ctx, highest)
	require.NoError(t, err)

	records := svc.Read(1, producers)
	require.Len(t, records, producers)
	for i, r := range records {
		assert.Equal(t, uint64(i+1), r.Index, "records come back densely ordered")
	}
}
