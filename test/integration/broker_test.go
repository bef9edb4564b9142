package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"raftlog/internal/broker"
	"raftlog/internal/configuration"
	"raftlog/internal/raft"
	"raftlog/internal/raft/storage"
	"raftlog/internal/transport"
	"raftlog/internal/transport/gen/brokerpb"
)

// startBrokerNode boots a full single-member broker on ephemeral ports and
// returns a client connected over real gRPC.
func startBrokerNode(t *testing.T) brokerpb.BrokerServiceClient {
	t.Helper()

	cfg := &configuration.Properties{}
	cfg.Transport.Network = "tcp"
	cfg.Transport.Address = "127.0.0.1"
	cfg.Transport.RaftPort = "0"
	cfg.Transport.ClientPort = "0"
	cfg.Transport.TimeoutSeconds = 5
	cfg.Transport.MaxConcurrentStreams = 64
	cfg.Raft.NodeID = 1
	cfg.Raft.Peers = map[uint64]string{1: "127.0.0.1:0"}

	wal, recovered, err := storage.Open(t.TempDir(), true)
	require.NoError(t, err)
	t.Cleanup(func() { wal.Close() })

	peerClient, err := transport.NewClient(cfg.Raft.Peers, cfg.Raft.NodeID, cfg.Transport.Timeout())
	require.NoError(t, err)
	t.Cleanup(peerClient.Close)

	commitLog := broker.NewCommitLog()
	node := raft.NewNode(raft.Config{
		ID:                 1,
		ElectionTimeoutMin: 20 * time.Millisecond,
		ElectionTimeoutMax: 40 * time.Millisecond,
		HeartbeatInterval:  10 * time.Millisecond,
	}, wal, recovered, peerClient, commitLog)
	node.Start()
	t.Cleanup(node.Stop)

	svc := transport.NewService(cfg, node, broker.NewService(node, commitLog))
	_, err = svc.StartRaftServer()
	require.NoError(t, err)
	clientLis, err := svc.StartClientServer()
	require.NoError(t, err)
	t.Cleanup(svc.Stop)

	require.Eventually(t, func() bool {
		return node.Status().Role == raft.Leader
	}, 2*time.Second, 5*time.Millisecond)

	conn, err := grpc.NewClient(clientLis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return brokerpb.NewBrokerServiceClient(conn)
}

func TestBroker_ProduceAwaitRead(t *testing.T) {
	client := startBrokerNode(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	produce, err := client.Produce(ctx, &brokerpb.ProduceRequest{Payload: []byte("first")})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), produce.GetIndex())

	await, err := client.Await(ctx, &brokerpb.AwaitRequest{Index: produce.GetIndex()})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, await.GetAppliedIndex(), produce.GetIndex())

	read, err := client.Read(ctx, &brokerpb.ReadRequest{FromIndex: 1, MaxRecords: 10})
	require.NoError(t, err)
	require.Len(t, read.GetRecords(), 1)
	assert.Equal(t, []byte("first"), read.GetRecords()[0].GetPayload())
	assert.GreaterOrEqual(t, read.GetCommitIndex(), uint64(1))
}

func TestBroker_StatusOverWire(t *testing.T) {
	client := startBrokerNode(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := client.Status(ctx, &brokerpb.StatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.GetNodeId())
	assert.Equal(t, "leader", st.GetRole())
	assert.Equal(t, uint64(1), st.GetLeaderId())
}

func TestBroker_EmptyPayloadRejected(t *testing.T) {
	client := startBrokerNode(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Produce(ctx, &brokerpb.ProduceRequest{})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func TestBroker_ManyRecordsRoundTrip(t *testing.T) {
	client := startBrokerNode(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	const count = 50
	var last uint64
	for i := 0; i < count; i++ {
		resp, err := client.Produce(ctx, &brokerpb.ProduceRequest{Payload: []byte{byte(i)}})
		require.NoError(t, err)
		last = resp.GetIndex()
	}

	_, err := client.Await(ctx, &brokerpb.AwaitRequest{Index: last})
	require.NoError(t, err)

	read, err := client.Read(ctx, &brokerpb.ReadRequest{FromIndex: 1, MaxRecords: count})
	require.NoError(t, err)
	require.Len(t, read.GetRecords(), count)
	for i, r := range read.GetRecords() {
		assert.Equal(t, uint64(i+1), r.GetIndex())
		assert.Equal(t, []byte{byte(i)}, r.GetPayload())
	}
}
