package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RaftIsLeader = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "is_leader",
		Help:      "Whether this node is the Raft leader (1=leader, 0=otherwise)",
	})

	RaftTerm = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "term",
		Help:      "Current Raft term",
	})

	RaftCommitIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "commit_index",
		Help:      "Current Raft commit index",
	})

	RaftAppliedIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "applied_index",
		Help:      "Last applied Raft index",
	})

	RaftLastLogIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "last_log_index",
		Help:      "Index of the last entry in the local log",
	})

	RaftElectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "elections_total",
		Help:      "Total elections started by this node",
	})

	RaftVotesGrantedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "votes_granted_total",
		Help:      "Total votes granted to candidates by this node",
	})

	RaftMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "messages_total",
		Help:      "Total Raft RPCs sent/received",
	}, []string{"direction", "type"})

	RaftMessageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "message_errors_total",
		Help:      "Total Raft RPC send failures",
	}, []string{"peer_id"})

	RaftProposalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "proposals_total",
		Help:      "Total commands submitted to this node",
	})

	RaftProposalsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "raft",
		Name:      "proposals_failed_total",
		Help:      "Total rejected command submissions",
	})

	ApplyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "raftlog",
		Subsystem: "apply",
		Name:      "duration_seconds",
		Help:      "State machine apply duration per entry",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	})

	AppliedEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "apply",
		Name:      "entries_total",
		Help:      "Total entries applied to the state machine",
	})

	WALWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "wal",
		Name:      "writes_total",
		Help:      "Total WAL record writes",
	})

	WALWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "raftlog",
		Subsystem: "wal",
		Name:      "write_duration_seconds",
		Help:      "WAL write duration",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	})

	WALSyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "raftlog",
		Subsystem: "wal",
		Name:      "sync_duration_seconds",
		Help:      "WAL sync duration",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20),
	})

	BrokerRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "broker",
		Name:      "records_total",
		Help:      "Total records appended to the replicated commit log",
	})

	GRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "raftlog",
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total gRPC requests",
	}, []string{"method"})

	GRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "raftlog",
		Subsystem: "grpc",
		Name:      "request_duration_seconds",
		Help:      "gRPC request duration",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"method"})
)
