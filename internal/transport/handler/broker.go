package handler

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"raftlog/internal/broker"
	"raftlog/internal/metrics"
	"raftlog/internal/raft"
	"raftlog/internal/transport/gen/brokerpb"
)

const defaultReadBatch = 128

// BrokerHandler exposes the produce/consume surface over gRPC.
type BrokerHandler struct {
	brokerpb.UnimplementedBrokerServiceServer
	service *broker.Service
}

func NewBrokerHandler(service *broker.Service) *BrokerHandler {
	return &BrokerHandler{service: service}
}

func (h *BrokerHandler) Produce(ctx context.Context, req *brokerpb.ProduceRequest) (*brokerpb.ProduceResponse, error) {
	start := time.Now()
	defer func() {
		metrics.GRPCRequestDuration.WithLabelValues("produce").Observe(time.Since(start).Seconds())
	}()
	metrics.GRPCRequestsTotal.WithLabelValues("produce").Inc()

	res, err := h.service.Produce(ctx, req.GetPayload())
	if err != nil {
		if errors.Is(err, raft.ErrNotLeader) {
			// Include the leader hint so clients can redirect instead of
			// polling every member.
			st := h.service.Status()
			return &brokerpb.ProduceResponse{LeaderId: st.LeaderID}, raftError(err)
		}
		if errors.Is(err, broker.ErrEmptyPayload) {
			return nil, status.Error(codes.InvalidArgument, "empty payload")
		}
		return nil, raftError(err)
	}

	return &brokerpb.ProduceResponse{Index: res.Index, Term: res.Term}, nil
}

func (h *BrokerHandler) Await(ctx context.Context, req *brokerpb.AwaitRequest) (*brokerpb.AwaitResponse, error) {
	metrics.GRPCRequestsTotal.WithLabelValues("await").Inc()

	applied, err := h.service.Await(ctx, req.GetIndex())
	if err != nil {
		return nil, raftError(err)
	}

	return &brokerpb.AwaitResponse{AppliedIndex: applied}, nil
}

func (h *BrokerHandler) Read(ctx context.Context, req *brokerpb.ReadRequest) (*brokerpb.ReadResponse, error) {
	metrics.GRPCRequestsTotal.WithLabelValues("read").Inc()

	max := int(req.GetMaxRecords())
	if max <= 0 {
		max = defaultReadBatch
	}

	records := h.service.Read(req.GetFromIndex(), max)
	out := make([]*brokerpb.Record, len(records))
	for i, r := range records {
		out[i] = &brokerpb.Record{Index: r.Index, Payload: r.Payload}
	}

	return &brokerpb.ReadResponse{
		Records:     out,
		CommitIndex: h.service.Status().CommitIndex,
	}, nil
}

func (h *BrokerHandler) Status(ctx context.Context, req *brokerpb.StatusRequest) (*brokerpb.StatusResponse, error) {
	metrics.GRPCRequestsTotal.WithLabelValues("status").Inc()

	st := h.service.Status()
	return &brokerpb.StatusResponse{
		NodeId:       st.ID,
		Role:         st.Role.String(),
		Term:         st.Term,
		LeaderId:     st.LeaderID,
		CommitIndex:  st.CommitIndex,
		AppliedIndex: st.LastApplied,
		LastLogIndex: st.LastLogIndex,
	}, nil
}
