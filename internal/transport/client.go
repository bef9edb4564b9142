package transport

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"

	"raftlog/internal/raft"
	"raftlog/internal/raft/gen/raftpb"
)

// Client delivers consensus RPCs to peers over gRPC. Connections are
// created lazily by grpc.NewClient and reconnect on their own; a peer
// being down surfaces as an RPC error, which the consensus layer already
// treats as lossy delivery.
type Client struct {
	timeout time.Duration
	clients map[uint64]raftpb.ConsensusServiceClient
	conns   []*grpc.ClientConn
}

// NewClient dials every peer in the address map.
func NewClient(peers map[uint64]string, selfID uint64, timeout time.Duration) (*Client, error) {
	c := &Client{
		timeout: timeout,
		clients: make(map[uint64]raftpb.ConsensusServiceClient, len(peers)),
	}

	for id, addr := range peers {
		if id == selfID {
			continue
		}
		conn, err := dialPeer(addr)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("dial peer %d at %s: %w", id, addr, err)
		}
		c.conns = append(c.conns, conn)
		c.clients[id] = raftpb.NewConsensusServiceClient(conn)
	}

	return c, nil
}

func dialPeer(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithKeepaliveParams(keepalive.ClientParameters{
		Time:                30 * time.Second,
		Timeout:             5 * time.Second,
		PermitWithoutStream: true,
	}))
}

func (c *Client) RequestVote(ctx context.Context, to uint64, req *raft.RequestVoteRequest) (*raft.RequestVoteResponse, error) {
	client, ok := c.clients[to]
	if !ok {
		return nil, fmt.Errorf("unknown peer %d", to)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := client.RequestVote(ctx, requestVoteToProto(req))
	if err != nil {
		return nil, err
	}
	return requestVoteRespFromProto(resp), nil
}

func (c *Client) AppendEntries(ctx context.Context, to uint64, req *raft.AppendEntriesRequest) (*raft.AppendEntriesResponse, error) {
	client, ok := c.clients[to]
	if !ok {
		return nil, fmt.Errorf("unknown peer %d", to)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := client.AppendEntries(ctx, appendEntriesToProto(req))
	if err != nil {
		return nil, err
	}
	return appendEntriesRespFromProto(resp), nil
}

func (c *Client) Close() {
	for _, conn := range c.conns {
		conn.Close()
	}
}
