package transport

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"raftlog/internal/broker"
	"raftlog/internal/configuration"
	"raftlog/internal/raft"
	"raftlog/internal/raft/gen/raftpb"
	"raftlog/internal/transport/gen/brokerpb"
	"raftlog/internal/transport/handler"
)

// Service runs the two gRPC listeners: one for peer consensus traffic and
// one for broker clients. They are separate servers so client load never
// competes with replication on the same connection limits.
type Service struct {
	network              string
	address              string
	raftPort             string
	clientPort           string
	timeout              time.Duration
	maxConcurrentStreams uint32

	node          *raft.Node
	brokerService *broker.Service

	RaftServer   *grpc.Server
	ClientServer *grpc.Server
}

func NewService(cfg *configuration.Properties, node *raft.Node, brokerService *broker.Service) *Service {
	return &Service{
		network:              cfg.Transport.Network,
		address:              cfg.Transport.Address,
		raftPort:             cfg.Transport.RaftPort,
		clientPort:           cfg.Transport.ClientPort,
		timeout:              cfg.Transport.Timeout(),
		maxConcurrentStreams: cfg.Transport.MaxConcurrentStreams,
		node:                 node,
		brokerService:        brokerService,
	}
}

func (s *Service) StartRaftServer() (net.Listener, error) {
	lis, err := net.Listen(s.network, net.JoinHostPort(s.address, s.raftPort))
	if err != nil {
		return nil, err
	}

	var opts []grpc.ServerOption
	opts = append(opts, grpc.MaxConcurrentStreams(s.maxConcurrentStreams))
	opts = append(opts, grpc.UnaryInterceptor(timeoutInterceptor(s.timeout)))

	s.RaftServer = grpc.NewServer(opts...)
	raftpb.RegisterConsensusServiceServer(s.RaftServer, handler.NewConsensusHandler(s.node))
	reflection.Register(s.RaftServer)

	slog.Info("transport listening for peers", "raft_addr", lis.Addr())

	go func() {
		if err := s.RaftServer.Serve(lis); err != nil {
			slog.Error("failed to serve raft listener", "error", err)
		}
	}()

	return lis, nil
}

func (s *Service) StartClientServer() (net.Listener, error) {
	lis, err := net.Listen(s.network, net.JoinHostPort(s.address, s.clientPort))
	if err != nil {
		return nil, err
	}

	var opts []grpc.ServerOption
	opts = append(opts, grpc.MaxConcurrentStreams(s.maxConcurrentStreams))

	s.ClientServer = grpc.NewServer(opts...)
	brokerpb.RegisterBrokerServiceServer(s.ClientServer, handler.NewBrokerHandler(s.brokerService))
	reflection.Register(s.ClientServer)

	slog.Info("transport listening for clients", "client_addr", lis.Addr())

	go func() {
		if err := s.ClientServer.Serve(lis); err != nil {
			slog.Error("failed to serve client listener", "error", err)
		}
	}()

	return lis, nil
}

func (s *Service) Stop() {
	if s.ClientServer != nil {
		s.ClientServer.GracefulStop()
	}
	if s.RaftServer != nil {
		s.RaftServer.GracefulStop()
	}
}

func timeoutInterceptor(d time.Duration) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}
