package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"raftlog/internal/broker"
	"raftlog/internal/configuration"
	"raftlog/internal/logging"
	"raftlog/internal/metrics"
	"raftlog/internal/raft"
	"raftlog/internal/raft/storage"
	"raftlog/internal/transport"
)

const metricsRefreshInterval = 5 * time.Second

func main() {
	configDir := flag.String("config", "config", "directory holding application.yml")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := configuration.Load(*configDir)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.App.LogLevel)
	slog.Info("starting broker", "node_id", cfg.Raft.NodeID, "profile", cfg.App.Profile)

	wal, recovered, err := storage.Open(cfg.Raft.StorageDir, cfg.Raft.Wal.NoSync)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer wal.Close()

	peerClient, err := transport.NewClient(cfg.Raft.Peers, cfg.Raft.NodeID, cfg.Transport.Timeout())
	if err != nil {
		slog.Error("failed to dial peers", "error", err)
		os.Exit(1)
	}
	defer peerClient.Close()

	commitLog := broker.NewCommitLog()

	minTimeout, maxTimeout := cfg.Raft.ElectionTimeoutRange()
	node := raft.NewNode(raft.Config{
		ID:                 cfg.Raft.NodeID,
		Peers:              cfg.Raft.PeerIDs(),
		ElectionTimeoutMin: minTimeout,
		ElectionTimeoutMax: maxTimeout,
		HeartbeatInterval:  cfg.Raft.HeartbeatTick(),
		MaxBatchEntries:    cfg.Raft.MaxBatchEntries,
		InboxSize:          cfg.Raft.StepInboxSize,
	}, wal, recovered, peerClient, commitLog)

	node.Start()
	defer node.Stop()

	brokerService := broker.NewService(node, commitLog)
	transportService := transport.NewService(cfg, node, brokerService)

	raftLis, err := transportService.StartRaftServer()
	if err != nil {
		slog.Error("failed to start raft listener", "error", err)
		os.Exit(1)
	}
	clientLis, err := transportService.StartClientServer()
	if err != nil {
		slog.Error("failed to start client listener", "error", err)
		os.Exit(1)
	}

	metricsServer := metrics.NewServer(cfg.App.MetricsAddr)
	metricsServer.Start()

	go refreshMetrics(ctx, node)

	slog.Info("broker ready",
		"raft_addr", raftLis.Addr(),
		"client_addr", clientLis.Addr(),
		"metrics_addr", cfg.App.MetricsAddr,
	)

	<-ctx.Done()
	slog.Info("shutting down broker")

	transportService.Stop()
	metricsServer.Stop()
}

func refreshMetrics(ctx context.Context, node *raft.Node) {
	ticker := time.NewTicker(metricsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			node.UpdateMetrics()
		}
	}
}
